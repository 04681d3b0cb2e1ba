package catalog

import (
	"context"
	"testing"

	"github.com/framehouse-studio/booking-backend/pkg/db/dbtest"
	"github.com/framehouse-studio/booking-backend/pkg/enums"
	pkgerrors "github.com/framehouse-studio/booking-backend/pkg/errors"
	"github.com/google/uuid"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.Open(t)))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestServiceCreateAndUpdatePackage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePackage(ctx, PackageInput{
		Name:          " Premium Wedding Package ",
		PriceCents:    250000,
		DurationHours: 8,
		Features:      []string{"Highlight film", " ", "Drone"},
	})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	if created.Name != "Premium Wedding Package" || created.PriceFormatted != "$2,500.00" {
		t.Fatalf("unexpected package %+v", created)
	}
	if len(created.Features) != 2 {
		t.Fatalf("expected blank features to be dropped, got %v", created.Features)
	}

	price := int64(275000)
	updated, err := svc.UpdatePackage(ctx, created.ID, PackagePatch{PriceCents: &price})
	if err != nil {
		t.Fatalf("UpdatePackage: %v", err)
	}
	if updated.PriceCents != 275000 || updated.Name != "Premium Wedding Package" {
		t.Fatalf("unexpected update result %+v", updated)
	}
}

func TestServiceValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreatePackage(ctx, PackageInput{Name: "x", PriceCents: -1, DurationHours: 4}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
	if _, err := svc.CreatePackage(ctx, PackageInput{Name: "x", PriceCents: 1, DurationHours: 0}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for zero duration, got %v", err)
	}
	if _, err := svc.CreateAddon(ctx, AddonInput{Name: "Drone", PriceCents: 100, Category: "catering"}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for category, got %v", err)
	}
	if _, err := svc.CreateVenue(ctx, VenueInput{Name: "Barn"}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing address, got %v", err)
	}
}

func TestServiceNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.GetPackage(ctx, uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for package, got %v", err)
	}
	if _, err := svc.GetVenue(ctx, uuid.New()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for venue, got %v", err)
	}
	name := "x"
	if _, err := svc.UpdateAddon(ctx, uuid.New(), AddonPatch{Name: &name}); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for addon, got %v", err)
	}
}

func TestServiceListVenuesShapesAddress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateVenue(ctx, VenueInput{Name: "Modern Loft", Address: "12 5th Ave", City: "Nashville", State: "tn", ZipCode: "37203"}); err != nil {
		t.Fatalf("CreateVenue: %v", err)
	}
	venues, err := svc.ListVenues(ctx, VenueFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if len(venues) != 1 || venues[0].FullAddress != "12 5th Ave, Nashville, TN 37203" {
		t.Fatalf("unexpected venues %+v", venues)
	}

	category := enums.AddonCategory("bogus")
	if _, err := svc.ListAddons(ctx, AddonFilter{Category: &category}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for bogus category, got %v", err)
	}
}
