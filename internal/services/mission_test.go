package services

import (
	"net/http"
	"testing"

	"github.com/yungbote/youthcare-backend/internal/data/repos/testutil"
	"github.com/yungbote/youthcare-backend/internal/domain/mission"
	"github.com/yungbote/youthcare-backend/internal/domain/user"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

func boolPtr(v bool) *bool { return &v }

func TestMissionStartAndComplete(t *testing.T) {
	h := newHarness(t)
	svc := h.missionService()
	coach := h.seedUser(t, user.RoleCoach)
	youth, _ := h.seedYouth(t, nil)
	m := testutil.SeedMission(t, h.ctx, h.tx, coach.ID, 3)
	dbc := h.as(youth)

	_, err := svc.Start(h.as(coach), m.ID)
	wantCode(t, err, http.StatusForbidden, "forbidden")

	p, err := svc.Start(dbc, m.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p.TotalDays() != 3 || p.Status != mission.ProgressActive {
		t.Fatalf("Start progress days=%d status=%s, want 3 active", p.TotalDays(), p.Status)
	}
	_, err = svc.Start(dbc, m.ID)
	wantCode(t, err, http.StatusConflict, "mission_already_active")

	_, err = svc.RecordDay(dbc, m.ID, DayInput{Day: 4, Completed: boolPtr(true)})
	wantCode(t, err, http.StatusBadRequest, "day_out_of_range")
	_, err = svc.RecordDay(dbc, m.ID, DayInput{Day: 1})
	wantCode(t, err, http.StatusBadRequest, "action_required")

	for day := 1; day <= 2; day++ {
		res, err := svc.RecordDay(dbc, m.ID, DayInput{Day: day, Completed: boolPtr(true)})
		if err != nil {
			t.Fatalf("RecordDay(%d): %v", day, err)
		}
		if res.Reward != nil {
			t.Fatalf("RecordDay(%d) reward=%+v before completion", day, res.Reward)
		}
	}
	res, err := svc.RecordDay(dbc, m.ID, DayInput{Day: 3, Completed: boolPtr(true), Note: "done"})
	if err != nil {
		t.Fatalf("RecordDay(3): %v", err)
	}
	if res.Progress.Status != mission.ProgressCompleted || res.Progress.CompletionPercentage != 100 {
		t.Fatalf("progress=%s %d%%, want completed 100%%", res.Progress.Status, res.Progress.CompletionPercentage)
	}
	if res.Reward == nil || res.Reward.XPAwarded != m.RewardPoints {
		t.Fatalf("reward=%+v, want %d xp", res.Reward, m.RewardPoints)
	}

	_, err = svc.RecordDay(dbc, m.ID, DayInput{Day: 3, Completed: boolPtr(true)})
	wantCode(t, err, http.StatusNotFound, "progress_not_found")

	profile, err := h.youth.GetByUserID(dbc, youth.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.TotalPoints != m.RewardPoints {
		t.Fatalf("TotalPoints=%d, want %d", profile.TotalPoints, m.RewardPoints)
	}
	got, err := h.missions.GetByID(dbc, m.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Completions != 1 {
		t.Fatalf("Completions=%d, want 1", got.Completions)
	}
}

func TestMissionInactiveCannotStart(t *testing.T) {
	h := newHarness(t)
	coach := h.seedUser(t, user.RoleCoach)
	youth, _ := h.seedYouth(t, nil)
	m := testutil.SeedMission(t, h.ctx, h.tx, coach.ID, 1)
	if err := h.tx.Model(m).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err := h.missionService().Start(h.as(youth), m.ID)
	wantCode(t, err, http.StatusBadRequest, "mission_inactive")
}

func TestAssignMissionSendsMessage(t *testing.T) {
	h := newHarness(t)
	svc := h.assignmentService()
	coach := h.seedUser(t, user.RoleCoach)
	youth, _ := h.seedYouth(t, testutil.PtrUUID(coach.ID))
	m := testutil.SeedMission(t, h.ctx, h.tx, coach.ID, 1)

	a, err := svc.Assign(h.as(coach), AssignMissionInput{MissionID: m.ID, YouthID: youth.ID, Notes: " try it "})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if a.Status != mission.AssignmentAssigned || a.Notes != "try it" || a.AssignedBy != coach.ID {
		t.Fatalf("assignment=%+v", a)
	}
	_, err = svc.Assign(h.as(coach), AssignMissionInput{MissionID: m.ID, YouthID: youth.ID})
	wantCode(t, err, http.StatusConflict, "already_assigned")
	_, err = svc.Assign(h.as(coach), AssignMissionInput{MissionID: m.ID, YouthID: coach.ID})
	wantCode(t, err, http.StatusNotFound, "youth_not_found")

	inbox, err := h.messageService().Inbox(h.as(youth), nil, pagination.Page{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("Inbox: %v", err)
	}
	if inbox.Total != 1 {
		t.Fatalf("inbox total=%d, want 1", inbox.Total)
	}
	msg := inbox.Items[0]
	if msg.MessageType != "assignment" || msg.SenderID != coach.ID || msg.Content != "You have been assigned a new mission: "+m.Title {
		t.Fatalf("message=%+v", msg)
	}

	score := 120
	_, err = svc.Update(h.as(coach), a.ID, AssignmentUpdate{Score: &score})
	wantCode(t, err, http.StatusBadRequest, "invalid_score")

	status := mission.AssignmentCompleted
	updated, err := svc.Update(h.as(youth), a.ID, AssignmentUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("CompletedAt not stamped")
	}
}
