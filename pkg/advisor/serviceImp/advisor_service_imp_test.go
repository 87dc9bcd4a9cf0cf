package serviceImp

import (
	"context"
	"testing"
	"time"

	"cropcare/entities"
	"cropcare/pkg/irrigation"
	"cropcare/pkg/notify"
)

type fakeFarms struct {
	byUser map[string][]entities.Farm
}

func (f *fakeFarms) Create(*entities.Farm) error           { return nil }
func (f *fakeFarms) FindByID(uint) (*entities.Farm, error) { return nil, nil }
func (f *fakeFarms) ByUser(userID string) ([]entities.Farm, error) {
	return f.byUser[userID], nil
}
func (f *fakeFarms) All() ([]entities.Farm, error)        { return nil, nil }
func (f *fakeFarms) ActiveCropArea(uint) (float64, error) { return 0, nil }

type fakeCrops struct {
	byFarm map[uint][]entities.Crop
}

func (f *fakeCrops) Create(*entities.Crop) error           { return nil }
func (f *fakeCrops) FindByID(uint) (*entities.Crop, error) { return nil, nil }
func (f *fakeCrops) ActiveByFarm(farmID uint) ([]entities.Crop, error) {
	return f.byFarm[farmID], nil
}
func (f *fakeCrops) UpdateStage(uint, string) error  { return nil }
func (f *fakeCrops) UpdateStatus(uint, string) error { return nil }

type fakeIrrigation struct {
	recs      map[uint]irrigation.Recommendation
	scheduled []uint
	dupes     map[uint]bool
}

func (f *fakeIrrigation) RecommendForCrop(_ context.Context, crop *entities.Crop, _ *entities.Farm) irrigation.Recommendation {
	r := f.recs[crop.CropID]
	r.CropID = crop.CropID
	return r
}

func (f *fakeIrrigation) ScheduleIrrigation(crop *entities.Crop, _ float64, _ time.Time) (*entities.Activity, bool, error) {
	f.scheduled = append(f.scheduled, crop.CropID)
	return &entities.Activity{CropID: crop.CropID}, !f.dupes[crop.CropID], nil
}

func (f *fakeIrrigation) EfficiencyReport(*entities.Farm) (irrigation.EfficiencyReport, error) {
	return irrigation.EfficiencyReport{}, nil
}
func (f *fakeIrrigation) Calendar(*entities.Crop, int) []irrigation.CalendarDay { return nil }

type recordingNotifier struct {
	sent []notify.Request
}

func (n *recordingNotifier) Notify(_ context.Context, req notify.Request) error {
	n.sent = append(n.sent, req)
	return nil
}

func rec(action, priority string, water float64) irrigation.Recommendation {
	return irrigation.Recommendation{Action: action, Priority: priority, WaterAmountMM: water, MessageKey: "irrigation." + action}
}

func newAdvisor(farms *fakeFarms, crops *fakeCrops, irr *fakeIrrigation, n *recordingNotifier) *advisorSvc {
	return &advisorSvc{
		farms:      farms,
		crops:      crops,
		irrigation: irr,
		notifier:   n,
		now:        func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) },
	}
}

func TestUserScheduleSortsByPriority(t *testing.T) {
	farms := &fakeFarms{byUser: map[string][]entities.Farm{
		"u1": {{FarmID: 1, UserID: "u1"}, {FarmID: 2, UserID: "u1"}},
	}}
	crops := &fakeCrops{byFarm: map[uint][]entities.Crop{
		1: {{CropID: 10}, {CropID: 11}},
		2: {{CropID: 20}, {CropID: 21}},
	}}
	irr := &fakeIrrigation{recs: map[uint]irrigation.Recommendation{
		10: rec(irrigation.ActionMonitor, irrigation.PriorityLow, 0),
		11: rec(irrigation.ActionIrrigate, irrigation.PriorityUrgent, 30),
		20: rec(irrigation.ActionIrrigate, irrigation.PriorityMedium, 12),
		21: rec(irrigation.ActionIrrigate, irrigation.PriorityUrgent, 25),
	}}
	svc := newAdvisor(farms, crops, irr, &recordingNotifier{})

	out, err := svc.UserSchedule(context.Background(), "u1")
	if err != nil {
		t.Fatalf("user schedule: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("recommendations = %d, want 4", len(out))
	}
	gotOrder := []uint{out[0].Crop.CropID, out[1].Crop.CropID, out[2].Crop.CropID, out[3].Crop.CropID}
	// urgent entries first in original order, then medium, then low
	wantOrder := []uint{11, 21, 20, 10}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestScheduleAllUrgent(t *testing.T) {
	farms := &fakeFarms{byUser: map[string][]entities.Farm{
		"u1": {{FarmID: 1, UserID: "u1"}},
	}}
	crops := &fakeCrops{byFarm: map[uint][]entities.Crop{
		1: {{CropID: 10}, {CropID: 11}, {CropID: 12}, {CropID: 13}, {CropID: 14}},
	}}
	irr := &fakeIrrigation{
		recs: map[uint]irrigation.Recommendation{
			10: rec(irrigation.ActionIrrigate, irrigation.PriorityUrgent, 30),
			11: rec(irrigation.ActionIrrigate, irrigation.PriorityHigh, 20),
			12: rec(irrigation.ActionIrrigate, irrigation.PriorityMedium, 10), // below threshold
			13: rec(irrigation.ActionSkip, irrigation.PriorityLow, 0),         // not an irrigate
			14: rec(irrigation.ActionIrrigate, irrigation.PriorityUrgent, 15),
		},
		dupes: map[uint]bool{14: true}, // already scheduled today
	}
	n := &recordingNotifier{}
	svc := newAdvisor(farms, crops, irr, n)

	count, err := svc.ScheduleAllUrgent(context.Background(), "u1")
	if err != nil {
		t.Fatalf("schedule urgent: %v", err)
	}
	if count != 2 {
		t.Fatalf("scheduled = %d, want 2 (duplicate not counted)", count)
	}
	if len(irr.scheduled) != 3 {
		t.Fatalf("schedule attempts = %d, want 3 (crops 10, 11, 14)", len(irr.scheduled))
	}
	if len(n.sent) != 2 {
		t.Fatalf("notifications = %d, want one per newly scheduled crop", len(n.sent))
	}
	for _, req := range n.sent {
		if req.Recipient != "u1" {
			t.Errorf("notification recipient = %s", req.Recipient)
		}
		if req.MessageKey != "irrigation.irrigate" {
			t.Errorf("notification key = %s", req.MessageKey)
		}
	}
}

func TestFarmScheduleEmptyFarm(t *testing.T) {
	svc := newAdvisor(
		&fakeFarms{byUser: map[string][]entities.Farm{}},
		&fakeCrops{byFarm: map[uint][]entities.Crop{}},
		&fakeIrrigation{recs: map[uint]irrigation.Recommendation{}},
		&recordingNotifier{},
	)
	out, err := svc.FarmSchedule(context.Background(), &entities.Farm{FarmID: 9})
	if err != nil {
		t.Fatalf("farm schedule: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("recommendations = %d, want none", len(out))
	}
}
