package policy

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAllow(t *testing.T) {
	youth := Actor{UserID: uuid.New(), Role: "youth"}
	other := Actor{UserID: uuid.New(), Role: "youth"}
	coach := Actor{UserID: uuid.New(), Role: "coach"}
	otherCoach := Actor{UserID: uuid.New(), Role: "coach"}
	parent := Actor{UserID: uuid.New(), Role: "parent"}
	clinician := Actor{UserID: uuid.New(), Role: "clinician"}
	admin := Actor{UserID: uuid.New(), Role: "admin"}

	youthRecord := Owned(youth.UserID, coach.UserID, parent.UserID)

	cases := []struct {
		name  string
		actor Actor
		act   Action
		res   Resource
		want  bool
	}{
		{"owner writes journal", youth, WriteJournal, Owned(youth.UserID), true},
		{"other youth cannot write", other, WriteJournal, Owned(youth.UserID), false},
		{"admin cannot edit journal", admin, WriteJournal, Owned(youth.UserID), false},
		{"coach reads journal", coach, ReadJournal, Owned(youth.UserID), true},
		{"parent cannot read journal", parent, ReadJournal, Owned(youth.UserID), false},
		{"parent reads linked youth profile", parent, ViewYouthProfile, youthRecord, true},
		{"unlinked parent denied", Actor{UserID: uuid.New(), Role: "parent"}, ViewYouthProfile, youthRecord, false},
		{"clinician manages alerts", clinician, ManageAlerts, Resource{}, true},
		{"coach cannot manage alerts", coach, ManageAlerts, Resource{}, false},
		{"only admin assigns alerts", clinician, AssignAlert, Resource{}, false},
		{"youth reads own alerts", youth, ReadYouthAlerts, Owned(youth.UserID), true},
		{"youth cannot read others alerts", other, ReadYouthAlerts, Owned(youth.UserID), false},
		{"youth claims reward", youth, ClaimReward, Resource{}, true},
		{"coach cannot claim reward", coach, ClaimReward, Resource{}, false},
		{"assigned coach assigns survey", coach, AssignSurvey, Owned(youth.UserID, coach.UserID), true},
		{"unassigned coach cannot assign survey", otherCoach, AssignSurvey, Owned(youth.UserID, coach.UserID), false},
		{"clinician assigns survey", clinician, AssignSurvey, Owned(youth.UserID), true},
		{"sender deletes message", coach, DeleteMessage, Owned(youth.UserID, coach.UserID), true},
		{"third party cannot delete message", other, DeleteMessage, Owned(youth.UserID, coach.UserID), false},
		{"anonymous denied", Actor{Role: "admin"}, ManageUsers, Resource{}, false},
		{"unknown action denied", admin, Action("nope"), Resource{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allow(tc.actor, tc.act, tc.res); got != tc.want {
				t.Fatalf("Allow(%s,%s)=%v, want %v", tc.actor.Role, tc.act, got, tc.want)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	err := Check(Actor{UserID: uuid.New(), Role: "youth"}, ManageUsers, Resource{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Check: err=%v, want ErrForbidden", err)
	}
}

func TestMayAttempt(t *testing.T) {
	cases := []struct {
		role string
		act  Action
		want bool
	}{
		{"youth", PlayMission, true},
		{"coach", PlayMission, false},
		{"parent", WriteJournal, true},
		{"youth", ManageAlerts, false},
		{"admin", Action("nope"), false},
	}
	for _, tc := range cases {
		if got := MayAttempt(tc.role, tc.act); got != tc.want {
			t.Fatalf("MayAttempt(%q,%q)=%v, want %v", tc.role, tc.act, got, tc.want)
		}
	}
}

func TestEveryActionHasRule(t *testing.T) {
	for act, rule := range Rules {
		if len(rule.Roles) == 0 && !rule.Owner && !rule.Managers {
			t.Fatalf("rule for %s grants nothing", act)
		}
	}
}
