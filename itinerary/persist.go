package itinerary

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"trippal/db"
	"trippal/models"
	"trippal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoadSnapshot rebuilds the in-memory board for a trip from the trip,
// day and activity documents.
func LoadSnapshot(ctx context.Context, tripID string) (Snapshot, error) {
	var trip models.Trip
	err := db.TripsCollection.FindOne(ctx, bson.M{"tripid": tripID}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownTrip, tripID)
		}
		return Snapshot{}, err
	}

	days, err := utils.FindAndDecode[models.Day](ctx, db.DaysCollection, bson.M{"tripid": tripID})
	if err != nil {
		return Snapshot{}, err
	}
	activities, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, bson.M{"tripid": tripID})
	if err != nil {
		return Snapshot{}, err
	}

	snap := NewSnapshot(tripID)
	snap.DayOrder = slices.Clone(trip.DayOrder)
	for _, d := range days {
		if d.ActivityIDs == nil {
			d.ActivityIDs = []string{}
		}
		snap.Days[d.DayID] = d
		// Tolerate day docs missing from the stored order.
		if !slices.Contains(snap.DayOrder, d.DayID) {
			snap.DayOrder = append(snap.DayOrder, d.DayID)
		}
	}
	for _, a := range activities {
		snap.Activities[a.ActivityID] = a
	}
	return snap, nil
}

func saveDayOrder(ctx context.Context, tripID string, order []string) error {
	_, err := db.TripsCollection.UpdateOne(ctx,
		bson.M{"tripid": tripID},
		bson.M{"$set": bson.M{"day_order": order}})
	return err
}

func saveDayList(ctx context.Context, dayID string, activityIDs []string) error {
	_, err := db.DaysCollection.UpdateOne(ctx,
		bson.M{"dayid": dayID},
		bson.M{"$set": bson.M{"activity_ids": activityIDs}})
	return err
}

func saveDayTitle(ctx context.Context, dayID, title string) error {
	_, err := db.DaysCollection.UpdateOne(ctx,
		bson.M{"dayid": dayID},
		bson.M{"$set": bson.M{"title": title}})
	return err
}

func insertDay(ctx context.Context, day models.Day) error {
	_, err := db.DaysCollection.InsertOne(ctx, day)
	return err
}

func insertActivity(ctx context.Context, act models.Activity) error {
	_, err := db.ActivitiesCollection.InsertOne(ctx, act)
	return err
}

func deleteActivityDoc(ctx context.Context, activityID string) error {
	_, err := db.ActivitiesCollection.DeleteOne(ctx, bson.M{"activityid": activityID})
	return err
}

func saveActivityDay(ctx context.Context, activityID, dayID string) error {
	_, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID},
		bson.M{"$set": bson.M{"dayid": dayID}})
	return err
}

// DeleteDayCascade removes a day document, every activity it owned,
// and its entry in the trip's day order, in that dependency order.
// Both the board handlers and the raw day CRUD route go through here
// so there is exactly one cascade path.
func DeleteDayCascade(ctx context.Context, tripID, dayID string, newOrder []string) error {
	if _, err := db.ActivitiesCollection.DeleteMany(ctx, bson.M{"dayid": dayID}); err != nil {
		return err
	}
	if _, err := db.DaysCollection.DeleteOne(ctx, bson.M{"dayid": dayID}); err != nil {
		return err
	}
	return saveDayOrder(ctx, tripID, newOrder)
}
