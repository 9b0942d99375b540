// export.go - printable itinerary export
package export

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"trippal/db"
	"trippal/itinerary"
	"trippal/models"
	"trippal/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func shareURL(tripID string) string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/itinerary/" + tripID
}

// GET /api/trips/:tripid/export/pdf
func TripPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tripID := ps.ByName("tripid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var trip models.Trip
	if err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}

	snap, err := itinerary.LoadSnapshot(ctx, tripID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load itinerary")
		return
	}
	days := itinerary.Project(snap)

	qrPNG, err := qrcode.Encode(shareURL(tripID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, trip.Title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	if trip.Location != "" {
		pdf.Cell(0, 8, trip.Location)
		pdf.Ln(6)
	}
	if trip.StartDate != "" || trip.EndDate != "" {
		pdf.Cell(0, 8, fmt.Sprintf("%s - %s", trip.StartDate, trip.EndDate))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	for _, day := range days {
		pdf.SetFont("Arial", "B", 13)
		title := day.Title
		if day.Date != "" {
			title = fmt.Sprintf("%s (%s)", day.Title, day.Date)
		}
		pdf.Cell(0, 9, title)
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 11)
		if len(day.Activities) == 0 {
			pdf.Cell(0, 7, "  (no activities planned)")
			pdf.Ln(7)
		}
		for _, act := range day.Activities {
			line := "  " + act.Content
			if act.Time != "" {
				line = fmt.Sprintf("  %s  %s", act.Time, act.Content)
			}
			if act.Location != "" {
				line += " - " + act.Location
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(6)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+tripID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
