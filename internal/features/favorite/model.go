package favorite

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jdverbeke/cinevault-server-go/pkg/pagination"
	"github.com/jdverbeke/cinevault-server-go/pkg/types"
)

// Favorite marks a title as saved by a user. The catalog snapshot is
// denormalized so the favorites list renders without TMDB round trips.
type Favorite struct {
	types.BaseModel
	types.MediaSummary

	UserID uuid.UUID `gorm:"type:uuid;not null;column:user_id;index:idx_user_media,unique,priority:1" json:"userId"`
}

// TableName overrides the default table name.
func (Favorite) TableName() string { return "favorites" }

// AddInput carries the snapshot stored when a title is favorited.
type AddInput struct {
	MediaID      int64
	MediaType    types.MediaType
	Title        string
	PosterPath   *string
	BackdropPath *string
	Overview     string
	ReleaseDate  *string
	VoteAverage  float64
}

// Add favorites a title for the user. Re-favoriting refreshes the snapshot
// instead of failing on the unique index.
func Add(db *gorm.DB, userID uuid.UUID, input AddInput) (Favorite, error) {
	if !input.MediaType.Valid() {
		return Favorite{}, ErrInvalidMediaType
	}

	fav := Favorite{
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
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "media_type"}, {Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "poster_path", "backdrop_path", "overview", "release_date", "vote_average", "updated_at",
		}),
	}).Create(&fav).Error
	if err != nil {
		return Favorite{}, err
	}

	return fav, nil
}

// Remove unfavorites a title.
func Remove(db *gorm.DB, userID uuid.UUID, mediaType types.MediaType, mediaID int64) error {
	if !mediaType.Valid() {
		return ErrInvalidMediaType
	}

	result := db.Delete(&Favorite{}, "user_id = ? AND media_type = ? AND media_id = ?", userID, mediaType, mediaID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// List returns the user's favorites, newest first, optionally filtered by type.
func List(db *gorm.DB, userID uuid.UUID, mediaType types.MediaType, params pagination.Params) ([]Favorite, int64, error) {
	query := db.Model(&Favorite{}).Where("user_id = ?", userID)

	if mediaType != "" {
		if !mediaType.Valid() {
			return nil, 0, ErrInvalidMediaType
		}
		query = query.Where("media_type = ?", mediaType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []Favorite
	if err := query.Order("created_at DESC").Offset(params.Skip).Limit(params.Limit).Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

// ListIDs returns the user's favorited TMDB IDs split by media type, for the
// profile payload.
func ListIDs(db *gorm.DB, userID uuid.UUID) (movieIDs, seriesIDs []int64, err error) {
	type row struct {
		MediaID   int64
		MediaType types.MediaType
	}

	var rows []row
	if err := db.Model(&Favorite{}).
		Select("media_id", "media_type").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}

	movieIDs = make([]int64, 0, len(rows))
	seriesIDs = make([]int64, 0)
	for _, r := range rows {
		switch r.MediaType {
		case types.MediaTypeMovie:
			movieIDs = append(movieIDs, r.MediaID)
		case types.MediaTypeTV:
			seriesIDs = append(seriesIDs, r.MediaID)
		}
	}

	return movieIDs, seriesIDs, nil
}
