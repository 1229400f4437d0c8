package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/youthcare-backend/internal/data/repos"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
)

type Repos struct {
	User              repos.UserRepo
	UserToken         repos.UserTokenRepo
	YouthProfile      repos.YouthProfileRepo
	CoachProfile      repos.CoachProfileRepo
	ClinicianProfile  repos.ClinicianProfileRepo
	ParentProfile     repos.ParentProfileRepo
	Journal           repos.JournalRepo
	Mood              repos.MoodRepo
	Assessment        repos.AssessmentRepo
	Alert             repos.AlertRepo
	Mission           repos.MissionRepo
	MissionProgress   repos.MissionProgressRepo
	MissionAssignment repos.MissionAssignmentRepo
	Message           repos.MessageRepo
	Survey            repos.SurveyRepo
	SurveyAssignment  repos.SurveyAssignmentRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		UserToken:         repos.NewUserTokenRepo(db, log),
		YouthProfile:      repos.NewYouthProfileRepo(db, log),
		CoachProfile:      repos.NewCoachProfileRepo(db, log),
		ClinicianProfile:  repos.NewClinicianProfileRepo(db, log),
		ParentProfile:     repos.NewParentProfileRepo(db, log),
		Journal:           repos.NewJournalRepo(db, log),
		Mood:              repos.NewMoodRepo(db, log),
		Assessment:        repos.NewAssessmentRepo(db, log),
		Alert:             repos.NewAlertRepo(db, log),
		Mission:           repos.NewMissionRepo(db, log),
		MissionProgress:   repos.NewMissionProgressRepo(db, log),
		MissionAssignment: repos.NewMissionAssignmentRepo(db, log),
		Message:           repos.NewMessageRepo(db, log),
		Survey:            repos.NewSurveyRepo(db, log),
		SurveyAssignment:  repos.NewSurveyAssignmentRepo(db, log),
	}
}
