// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/nomad-korea/models"
)

// CityRow is a cities row as scanned from the database.
// Numeric columns arrive as text and JSON columns as raw bytes.
type CityRow struct {
	ID             string
	Name           string
	NameEn         string
	Region         string
	RegionDetail   string
	Description    string
	Images         []byte
	OverallRating  string
	CostOfLiving   int
	InternetSpeed  int
	SafetyScore    string
	CurrentWeather []byte
	AirQuality     []byte
	Metrics        []byte
	ReviewCount    int
	BookmarkCount  int
	Rank           sql.NullInt64
	Tags           []byte
	Likes          int
	Dislikes       int
	BudgetRange    string
	Environments   []byte
	BestSeason     string
}

type CafeRow struct {
	ID             string
	CityID         string
	Name           string
	Address        string
	WifiSpeed      int
	HasPowerOutlet bool
	NoiseLevel     int
	PriceRange     int
	Rating         string
	Images         []byte
}

// ReviewRow is a reviews row left-joined with its author profile and city.
type ReviewRow struct {
	ID                string
	UserID            string
	CityID            string
	OverallRating     string
	Ratings           []byte
	Content           string
	Images            []byte
	StayDuration      sql.NullString
	Occupation        sql.NullString
	RecommendedSeason []byte
	HelpfulCount      int
	CommentCount      int
	IsVerified        bool
	CreatedAt         time.Time
	ProfileName       sql.NullString
	ProfileAvatar     sql.NullString
	CityName          sql.NullString
}

// MapCity converts a row to the view model. It never fails: bad numeric
// text becomes 0 and bad JSON becomes an empty value.
func MapCity(row CityRow) models.City {
	city := models.City{
		ID:            row.ID,
		Name:          row.Name,
		NameEn:        row.NameEn,
		RegionDetail:  row.RegionDetail,
		Description:   row.Description,
		Images:        stringList(row.Images),
		OverallRating: parseNumber(row.OverallRating),
		CostOfLiving:  row.CostOfLiving,
		InternetSpeed: row.InternetSpeed,
		SafetyScore:   parseNumber(row.SafetyScore),
		ReviewCount:   row.ReviewCount,
		BookmarkCount: row.BookmarkCount,
		Tags:          stringList(row.Tags),
		Likes:         row.Likes,
		Dislikes:      row.Dislikes,
		BudgetRange:   row.BudgetRange,
		Region:        row.Region,
		Environments:  stringList(row.Environments),
		BestSeason:    row.BestSeason,
	}
	decodeObject(row.CurrentWeather, &city.CurrentWeather)
	decodeObject(row.AirQuality, &city.AirQuality)
	decodeObject(row.Metrics, &city.Metrics)

	if row.Rank.Valid {
		rank := int(row.Rank.Int64)
		city.Rank = &rank
	}

	return city
}

func MapCafe(row CafeRow) models.Cafe {
	return models.Cafe{
		ID:             row.ID,
		CityID:         row.CityID,
		Name:           row.Name,
		Address:        row.Address,
		WifiSpeed:      row.WifiSpeed,
		HasPowerOutlet: row.HasPowerOutlet,
		NoiseLevel:     row.NoiseLevel,
		PriceRange:     row.PriceRange,
		Rating:         parseNumber(row.Rating),
		Images:         stringList(row.Images),
	}
}

func MapReview(row ReviewRow) models.Review {
	review := models.Review{
		ID:                row.ID,
		UserID:            row.UserID,
		UserName:          models.UnknownUserName,
		CityID:            row.CityID,
		CityName:          row.CityName.String,
		OverallRating:     parseNumber(row.OverallRating),
		Content:           row.Content,
		Images:            stringList(row.Images),
		StayDuration:      row.StayDuration.String,
		Occupation:        row.Occupation.String,
		RecommendedSeason: stringList(row.RecommendedSeason),
		HelpfulCount:      row.HelpfulCount,
		CommentCount:      row.CommentCount,
		CreatedAt:         row.CreatedAt,
		IsVerified:        row.IsVerified,
	}
	decodeObject(row.Ratings, &review.Ratings)

	// A missing profile keeps the fallback name and an empty avatar
	if row.ProfileName.Valid {
		review.UserName = row.ProfileName.String
		review.UserAvatar = row.ProfileAvatar.String
	}

	return review
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func stringList(raw []byte) []string {
	list := []string{}
	if len(raw) == 0 {
		return list
	}
	if err := json.Unmarshal(raw, &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

func decodeObject[T any](raw []byte, dst *T) {
	if len(raw) == 0 {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

// encodeList is the write-side counterpart of stringList.
func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func encodeObject(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
