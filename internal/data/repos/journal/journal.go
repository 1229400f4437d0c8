package journal

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/youthcare-backend/internal/domain"
	"github.com/yungbote/youthcare-backend/internal/platform/dbctx"
	"github.com/yungbote/youthcare-backend/internal/platform/logger"
	"github.com/yungbote/youthcare-backend/internal/platform/pagination"
)

type Filter struct {
	Mood string
	Tag  string
	// ExcludePrivate hides entries the owner marked private.
	ExcludePrivate bool
}

type JournalRepo interface {
	Create(dbc dbctx.Context, j *types.Journal) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Journal, error)
	Save(dbc dbctx.Context, j *types.Journal) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID, filter Filter, page pagination.Page) ([]*types.Journal, int64, error)
	Search(dbc dbctx.Context, userID uuid.UUID, query string, limit int) ([]*types.Journal, error)
	ListMatching(dbc dbctx.Context, keywords []string, page pagination.Page) ([]*types.Journal, int64, error)
}

type journalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalRepo(db *gorm.DB, baseLog *logger.Logger) JournalRepo {
	return &journalRepo{db: db, log: baseLog.With("repo", "JournalRepo")}
}

func (r *journalRepo) Create(dbc dbctx.Context, j *types.Journal) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return dbc.Conn(r.db).Omit(clause.Associations).Create(j).Error
}

func (r *journalRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Journal, error) {
	var j types.Journal
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&j).Error; err != nil {
		return nil, err
	}
	if j.ID == uuid.Nil {
		return nil, nil
	}
	return &j, nil
}

func (r *journalRepo) Save(dbc dbctx.Context, j *types.Journal) error {
	return dbc.Conn(r.db).Omit(clause.Associations).Save(j).Error
}

func (r *journalRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.Conn(r.db).Where("id = ?", id).Delete(&types.Journal{}).Error
}

func (r *journalRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, filter Filter, page pagination.Page) ([]*types.Journal, int64, error) {
	q := dbc.Conn(r.db).Model(&types.Journal{}).Where("user_id = ?", userID)
	if filter.Mood != "" {
		q = q.Where("mood = ?", filter.Mood)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		q = q.Where("CAST(tags AS TEXT) LIKE ?", `%"`+tag+`"%`)
	}
	if filter.ExcludePrivate {
		q = q.Where("is_private = ?", false)
	}
	return pagination.Find[types.Journal](q, page, "created_at DESC")
}

// Search matches title, content or tags case-insensitively, newest first.
func (r *journalRepo) Search(dbc dbctx.Context, userID uuid.UUID, query string, limit int) ([]*types.Journal, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var results []*types.Journal
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ?)", like, like, like).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListMatching returns journals whose title, content or tags contain any
// keyword, with the author preloaded.
func (r *journalRepo) ListMatching(dbc dbctx.Context, keywords []string, page pagination.Page) ([]*types.Journal, int64, error) {
	if len(keywords) == 0 {
		return []*types.Journal{}, 0, nil
	}
	conds := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords)*4)
	for _, kw := range keywords {
		like := "%" + strings.ToLower(kw) + "%"
		conds = append(conds, "LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(CAST(tags AS TEXT)) LIKE ? OR LOWER(CAST(emotion_tags AS TEXT)) LIKE ?")
		args = append(args, like, like, like, like)
	}
	q := dbc.Conn(r.db).Model(&types.Journal{}).Where("("+strings.Join(conds, " OR ")+")", args...)
	return pagination.Find[types.Journal](q, page, "created_at DESC", "User")
}
