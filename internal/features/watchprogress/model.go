package watchprogress

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// WatchProgress records how far a user got into a title. One row per user and
// title; for series the row tracks the most recently watched episode.
type WatchProgress struct {
	types.BaseModel
	types.MediaSummary

	UserID          uuid.UUID `gorm:"type:uuid;not null;column:user_id;index:idx_user_media,unique,priority:1" json:"userId"`
	Season          *int      `gorm:"column:season" json:"season,omitempty"`
	Episode         *int      `gorm:"column:episode" json:"episode,omitempty"`
	ProgressSeconds float64   `gorm:"not null;default:0;column:progress_seconds" json:"progressSeconds"`
	DurationSeconds float64   `gorm:"not null;default:0;column:duration_seconds" json:"durationSeconds"`
}

// TableName overrides the default table name.
func (WatchProgress) TableName() string { return "watch_progresses" }

// Completed reports whether the title counts as finished. Credits run long,
// so anything past 90% is done.
func (w *WatchProgress) Completed() bool {
	if w.DurationSeconds <= 0 {
		return false
	}
	return w.ProgressSeconds/w.DurationSeconds >= 0.9
}

// UpsertInput carries a progress beacon from the player.
type UpsertInput struct {
	MediaID         int64
	MediaType       types.MediaType
	Title           string
	PosterPath      *string
	BackdropPath    *string
	Overview        string
	ReleaseDate     *string
	VoteAverage     float64
	Season          *int
	Episode         *int
	ProgressSeconds float64
	DurationSeconds float64
}

// Upsert stores or refreshes the progress row for the user and title.
func Upsert(db *gorm.DB, userID uuid.UUID, input UpsertInput) (WatchProgress, error) {
	if !input.MediaType.Valid() {
		return WatchProgress{}, ErrInvalidMediaType
	}
	if input.ProgressSeconds < 0 || input.DurationSeconds < 0 {
		return WatchProgress{}, ErrInvalidProgress
	}

	progress := WatchProgress{
		UserID: userID,
		MediaSummary: types.MediaSummary{
			MediaID:      input.MediaID,
			MediaType:    input.MediaType,
			Title:        input.Title,
			PosterPath:   input.PosterPath,
			BackdropPath: input.BackdropPath,
			Overview:     input.Overview,
			ReleaseDate:  input.ReleaseDate,
			VoteAverage:  input.VoteAverage,
		},
		Season:          input.Season,
		Episode:         input.Episode,
		ProgressSeconds: input.ProgressSeconds,
		DurationSeconds: input.DurationSeconds,
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "media_type"}, {Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "poster_path", "backdrop_path", "overview", "release_date", "vote_average",
			"season", "episode", "progress_seconds", "duration_seconds", "updated_at",
		}),
	}).Create(&progress).Error
	if err != nil {
		return WatchProgress{}, err
	}

	return progress, nil
}

// List returns the user's progress rows, most recently updated first.
func List(db *gorm.DB, userID uuid.UUID, params pagination.Params) ([]WatchProgress, int64, error) {
	query := db.Model(&WatchProgress{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []WatchProgress
	if err := query.Order("updated_at DESC").Offset(params.Skip).Limit(params.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Get returns the progress row for one title.
func Get(db *gorm.DB, userID uuid.UUID, mediaType types.MediaType, mediaID int64) (WatchProgress, error) {
	if !mediaType.Valid() {
		return WatchProgress{}, ErrInvalidMediaType
	}

	var row WatchProgress
	if err := db.First(&row, "user_id = ? AND media_type = ? AND media_id = ?", userID, mediaType, mediaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return row, ErrProgressNotFound
		}
		return row, err
	}
	return row, nil
}

// Delete removes a progress row, e.g. "remove from continue watching".
func Delete(db *gorm.DB, userID uuid.UUID, mediaType types.MediaType, mediaID int64) error {
	if !mediaType.Valid() {
		return ErrInvalidMediaType
	}

	result := db.Delete(&WatchProgress{}, "user_id = ? AND media_type = ? AND media_id = ?", userID, mediaType, mediaID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProgressNotFound
	}
	return nil
}
