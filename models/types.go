// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// VoteAction is the current user's stance on a city.
type VoteAction string

const (
	ActionNone    VoteAction = "none"
	ActionLike    VoteAction = "like"
	ActionDislike VoteAction = "dislike"
)

// Valid reports whether a is one of the three known actions.
func (a VoteAction) Valid() bool {
	switch a {
	case ActionNone, ActionLike, ActionDislike:
		return true
	}
	return false
}

// Budget brackets
const (
	BudgetUnder100 = "100만원 이하"
	Budget100To200 = "100~200만원"
	BudgetOver200  = "200만원 이상"
)

// Regions
const (
	RegionCapital     = "수도권"
	RegionGyeongsang  = "경상도"
	RegionJeolla      = "전라도"
	RegionGangwon     = "강원도"
	RegionJeju        = "제주도"
	RegionChungcheong = "충청도"
)

// Environment tags
const (
	EnvNature    = "자연친화"
	EnvUrban     = "도심선호"
	EnvCafeWork  = "카페작업"
	EnvCoworking = "코워킹 필수"
)

// Seasons
const (
	SeasonSpring = "봄"
	SeasonSummer = "여름"
	SeasonAutumn = "가을"
	SeasonWinter = "겨울"
)

var (
	Budgets      = []string{BudgetUnder100, Budget100To200, BudgetOver200}
	Regions      = []string{RegionCapital, RegionGyeongsang, RegionJeolla, RegionGangwon, RegionJeju, RegionChungcheong}
	Environments = []string{EnvNature, EnvUrban, EnvCafeWork, EnvCoworking}
	Seasons      = []string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
)

// UnknownUserName is shown for reviews whose author profile is gone.
const UnknownUserName = "알 수 없음"

// View types

type Weather struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feelsLike"`
	Condition string  `json:"condition"`
}

type AirQuality struct {
	AQI   int    `json:"aqi"`
	Level string `json:"level"`
}

type CityMetrics struct {
	CafeCount      int     `json:"cafeCount"`
	CoworkingCount int     `json:"coworkingCount"`
	TransportScore float64 `json:"transportScore"`
	CultureScore   float64 `json:"cultureScore"`
}

type City struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	NameEn         string      `json:"nameEn"`
	RegionDetail   string      `json:"regionDetail"`
	Description    string      `json:"description"`
	Images         []string    `json:"images"`
	OverallRating  float64     `json:"overallRating"`
	CostOfLiving   int         `json:"costOfLiving"`
	InternetSpeed  int         `json:"internetSpeed"`
	SafetyScore    float64     `json:"safetyScore"`
	CurrentWeather Weather     `json:"currentWeather"`
	AirQuality     AirQuality  `json:"airQuality"`
	Metrics        CityMetrics `json:"metrics"`
	ReviewCount    int         `json:"reviewCount"`
	BookmarkCount  int         `json:"bookmarkCount"`
	Rank           *int        `json:"rank,omitempty"` // nil = unranked
	Tags           []string    `json:"tags"`
	Likes          int         `json:"likes"`
	Dislikes       int         `json:"dislikes"`
	BudgetRange    string      `json:"budgetRange"`
	Region         string      `json:"region"`
	Environments   []string    `json:"environments"`
	BestSeason     string      `json:"bestSeason"`
}

type Cafe struct {
	ID             string   `json:"id"`
	CityID         string   `json:"cityId"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	WifiSpeed      int      `json:"wifiSpeed"`
	HasPowerOutlet bool     `json:"hasPowerOutlet"`
	NoiseLevel     int      `json:"noiseLevel"`
	PriceRange     int      `json:"priceRange"`
	Rating         float64  `json:"rating"`
	Images         []string `json:"images"`
}

type ReviewRatings struct {
	CostSatisfaction float64 `json:"costSatisfaction"`
	InternetQuality  float64 `json:"internetQuality"`
	WorkEnvironment  float64 `json:"workEnvironment"`
	Amenities        float64 `json:"amenities"`
	Community        float64 `json:"community"`
	Transport        float64 `json:"transport"`
	Nature           float64 `json:"nature"`
}

type Review struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	UserName          string        `json:"userName"`
	UserAvatar        string        `json:"userAvatar"`
	CityID            string        `json:"cityId"`
	CityName          string        `json:"cityName"`
	OverallRating     float64       `json:"overallRating"`
	Ratings           ReviewRatings `json:"ratings"`
	Content           string        `json:"content"`
	Images            []string      `json:"images"`
	StayDuration      string        `json:"stayDuration"`
	Occupation        string        `json:"occupation"`
	RecommendedSeason []string      `json:"recommendedSeason"`
	HelpfulCount      int           `json:"helpfulCount"`
	CommentCount      int           `json:"commentCount"`
	CreatedAt         time.Time     `json:"createdAt"`
	IsVerified        bool          `json:"isVerified"`
}

// VoteState is the per-city tally as the list container sees it.
type VoteState struct {
	CityID     string     `json:"cityId"`
	Likes      int        `json:"likes"`
	Dislikes   int        `json:"dislikes"`
	UserAction VoteAction `json:"userAction"`
}

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AvatarURL    string    `json:"avatarUrl"`
	Occupation   string    `json:"occupation"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// Request types

type UpdateLikeRequest struct {
	CityID    string     `json:"city_id"`
	OldAction VoteAction `json:"old_action"`
	NewAction VoteAction `json:"new_action"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Response types

// UpdateLikeResponse carries authoritative counts, or a soft error in Error.
type UpdateLikeResponse struct {
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	Error    string `json:"error,omitempty"`
}

type MyVoteResponse struct {
	Action VoteAction `json:"action"`
}

type CityListResponse struct {
	Cities      []City `json:"cities"`
	Count       int    `json:"count"`
	EmptyReason string `json:"empty_reason,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CityLabels are display strings for the detail page.
type CityLabels struct {
	CostOfLiving  string `json:"cost_of_living"`
	InternetSpeed string `json:"internet_speed"`
	SafetyScore   string `json:"safety_score"`
	WorkSpaces    string `json:"work_spaces"`
	ReviewCount   string `json:"review_count"`
}

type CityDetail struct {
	City    City       `json:"city"`
	Cafes   []Cafe     `json:"cafes"`
	Reviews []Review   `json:"reviews"`
	Labels  CityLabels `json:"labels"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
