// attachments.go - file attachments on an activity
package activities

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trippal/db"
	"trippal/models"
	"trippal/rdx"
	"trippal/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const attachmentDir = "static/attachments"

func processImageAttachment(file *multipart.FileHeader) (string, string, error) {
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"

	originalPath := filepath.Join(attachmentDir, fileName)
	thumbDir := filepath.Join(attachmentDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := utils.EnsureDir(attachmentDir); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/" + originalPath, "/" + thumbnailPath, nil
}

// POST /api/activities/:activityid/attachments
func UploadAttachment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No file provided")
		return
	}
	header := files[0]
	contentType := header.Header.Get("Content-Type")

	att := models.Attachment{
		AttachmentID: "attachment-" + utils.GetUUID(),
		Name:         utils.SanitizeFilename(header.Filename),
		ContentType:  contentType,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if strings.HasPrefix(contentType, "image/") {
		path, thumb, err := processImageAttachment(header)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
			return
		}
		att.Path = path
		att.ThumbPath = thumb
	} else {
		src, err := header.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to read file")
			return
		}
		defer src.Close()

		name, err := utils.SaveFile(src, header, attachmentDir)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save file")
			return
		}
		att.Path = "/" + filepath.Join(attachmentDir, name)
	}

	if _, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$push": bson.M{"attachments": att}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving attachment")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	utils.RespondWithJSON(w, http.StatusCreated, att)
}

// DELETE /api/activities/:activityid/attachments/:attachmentid
func DeleteAttachment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("activityid")
	attachmentID := ps.ByName("attachmentid")

	ctx, cancel := detailContext(r)
	defer cancel()

	act, ok := findActivity(ctx, activityID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	var stored *models.Attachment
	for i := range act.Attachments {
		if act.Attachments[i].AttachmentID == attachmentID {
			stored = &act.Attachments[i]
			break
		}
	}
	if stored == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Attachment not found")
		return
	}

	if _, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$pull": bson.M{"attachments": bson.M{"attachmentid": attachmentID}}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting attachment")
		return
	}
	rdx.InvalidateBoard(act.TripID)

	// best effort; the record is already gone
	os.Remove(strings.TrimPrefix(stored.Path, "/"))
	if stored.ThumbPath != "" {
		os.Remove(strings.TrimPrefix(stored.ThumbPath, "/"))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Attachment deleted successfully"})
}
