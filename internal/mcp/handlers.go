package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vijay-prabhu/perfumex/internal/advisor"
	"github.com/vijay-prabhu/perfumex/internal/config"
	"github.com/vijay-prabhu/perfumex/internal/database"
	"github.com/vijay-prabhu/perfumex/internal/perfume"
)

const defaultListLimit = 20

func (s *Server) registerHandlers() {
	s.handlers["recommend"] = s.handleRecommend
	s.handlers["get_alternatives"] = s.handleGetAlternatives
	s.handlers["replace_recommendation"] = s.handleReplaceRecommendation
	s.handlers["explain_perfume"] = s.handleExplainPerfume
	s.handlers["list_perfumes"] = s.handleListPerfumes
	s.handlers["get_perfume"] = s.handleGetPerfume
	s.handlers["search_perfumes"] = s.handleSearchPerfumes
	s.handlers["set_favorite"] = s.handleSetFavorite
	s.handlers["get_stats"] = s.handleGetStats
}

// decodeParams unmarshals tool arguments; absent arguments leave v untouched
func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// preferenceParams are optional overrides of the configured profile.
// A nil field keeps the configured value.
type preferenceParams struct {
	LikedFamilies          *[]string `json:"liked_families"`
	DislikedFamilies       *[]string `json:"disliked_families"`
	FavoriteNotes          *[]string `json:"favorite_notes"`
	DislikedNotes          *[]string `json:"disliked_notes"`
	PreferredBrands        *[]string `json:"preferred_brands"`
	PreferredGender        *[]string `json:"preferred_gender"`
	PreferredConcentration *[]string `json:"preferred_concentration"`
	MaxPrice               *float64  `json:"max_price"`
	MinLongevity           *int      `json:"min_longevity"`
}

// preferences layers the overrides over the configured profile and validates the result
func (s *Server) preferences(p preferenceParams) (perfume.Preferences, error) {
	prefs := s.config.Preferences.Profile()

	lists := []struct {
		value  *[]string
		target *[]string
	}{
		{p.LikedFamilies, &prefs.LikedFamilies},
		{p.DislikedFamilies, &prefs.DislikedFamilies},
		{p.FavoriteNotes, &prefs.FavoriteNotes},
		{p.DislikedNotes, &prefs.DislikedNotes},
		{p.PreferredBrands, &prefs.PreferredBrands},
		{p.PreferredGender, &prefs.PreferredGender},
		{p.PreferredConcentration, &prefs.PreferredConcentration},
	}
	for _, l := range lists {
		if l.value != nil {
			*l.target = perfume.CleanList(*l.value)
		}
	}
	if p.MaxPrice != nil {
		prefs.PriceRange[1] = *p.MaxPrice
	}
	if p.MinLongevity != nil {
		prefs.MinLongevity = *p.MinLongevity
	}

	if err := config.ValidateProfile(prefs); err != nil {
		return perfume.Preferences{}, fmt.Errorf("invalid preferences: %w", err)
	}
	return prefs, nil
}

type recommendParams struct {
	preferenceParams
	Count   *int     `json:"count"`
	Exclude []string `json:"exclude"`
	Save    *bool    `json:"save"`
}

type recommendResult struct {
	Recommendations []advisor.RecommendationRow `json:"recommendations"`
	Saved           bool                        `json:"saved"`
	Message         string                      `json:"message,omitempty"`
}

func (s *Server) handleRecommend(ctx context.Context, params json.RawMessage) (any, error) {
	var p recommendParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	prefs, err := s.preferences(p.preferenceParams)
	if err != nil {
		return nil, err
	}

	opts := advisor.RecommendOptions{
		Count:   s.config.Recommend.DisplayCount,
		Exclude: perfume.CleanList(p.Exclude),
		Save:    true,
	}
	if p.Count != nil {
		if *p.Count < 0 {
			return nil, fmt.Errorf("count must not be negative")
		}
		opts.Count = *p.Count
	}
	if p.Save != nil {
		opts.Save = *p.Save
	}

	rows, err := s.advisor.Recommend(ctx, prefs, opts)
	if err != nil {
		return nil, err
	}

	result := recommendResult{Recommendations: rows, Saved: opts.Save}
	if len(rows) == 0 {
		result.Message = "No perfume passes these preferences. Loosen max_price, liked_families or min_longevity."
	}
	return result, nil
}

func (s *Server) handleGetAlternatives(ctx context.Context, params json.RawMessage) (any, error) {
	var p preferenceParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	prefs, err := s.preferences(p)
	if err != nil {
		return nil, err
	}

	return s.advisor.Alternatives(ctx, prefs)
}

type replaceParams struct {
	preferenceParams
	PerfumeID string `json:"perfume_id"`
	With      string `json:"with"`
}

func (s *Server) handleReplaceRecommendation(ctx context.Context, params json.RawMessage) (any, error) {
	var p replaceParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.PerfumeID == "" {
		return nil, fmt.Errorf("perfume_id is required")
	}

	prefs, err := s.preferences(p.preferenceParams)
	if err != nil {
		return nil, err
	}

	result, err := s.advisor.Replace(ctx, prefs, p.PerfumeID, strings.TrimSpace(p.With))
	if err != nil {
		if errors.Is(err, advisor.ErrNoShortlist) {
			return nil, fmt.Errorf("no recommendations on display, call recommend first")
		}
		return nil, err
	}
	return result, nil
}

type perfumeIDParams struct {
	preferenceParams
	PerfumeID string `json:"perfume_id"`
}

func (s *Server) handleExplainPerfume(ctx context.Context, params json.RawMessage) (any, error) {
	var p perfumeIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.PerfumeID == "" {
		return nil, fmt.Errorf("perfume_id is required")
	}

	prefs, err := s.preferences(p.preferenceParams)
	if err != nil {
		return nil, err
	}

	d, err := s.advisor.Diagnose(ctx, prefs, p.PerfumeID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("perfume not found: %s", p.PerfumeID)
		}
		return nil, err
	}
	return d, nil
}

type listPerfumesParams struct {
	Family string `json:"family"`
	Limit  int    `json:"limit"`
}

func (s *Server) handleListPerfumes(ctx context.Context, params json.RawMessage) (any, error) {
	var p listPerfumesParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}

	opts := database.ListOptions{Family: strings.TrimSpace(p.Family), Limit: defaultListLimit}
	if p.Limit > 0 {
		opts.Limit = p.Limit
	}

	perfumes, err := s.db.ListPerfumes(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return perfumes, nil
}

type perfumeWithFavorite struct {
	Perfume  *perfume.Perfume `json:"perfume"`
	Favorite bool             `json:"favorite"`
}

func (s *Server) handleGetPerfume(ctx context.Context, params json.RawMessage) (any, error) {
	var p perfumeIDParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.PerfumeID == "" {
		return nil, fmt.Errorf("perfume_id is required")
	}

	item, err := s.db.GetPerfume(ctx, p.PerfumeID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("perfume not found: %s", p.PerfumeID)
	}

	fav, err := s.db.IsFavorite(ctx, p.PerfumeID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return perfumeWithFavorite{Perfume: item, Favorite: fav}, nil
}

type searchParams struct {
	Query string `json:"query"`
}

func (s *Server) handleSearchPerfumes(ctx context.Context, params json.RawMessage) (any, error) {
	var p searchParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Query) == "" {
		return nil, fmt.Errorf("query is required")
	}

	results, err := s.db.Search(ctx, p.Query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return results, nil
}

type setFavoriteParams struct {
	PerfumeID string `json:"perfume_id"`
	Favorite  *bool  `json:"favorite"`
}

func (s *Server) handleSetFavorite(ctx context.Context, params json.RawMessage) (any, error) {
	var p setFavoriteParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if p.PerfumeID == "" {
		return nil, fmt.Errorf("perfume_id is required")
	}

	if p.Favorite == nil || *p.Favorite {
		if err := s.db.AddFavorite(ctx, p.PerfumeID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return nil, fmt.Errorf("perfume not found: %s", p.PerfumeID)
			}
			return nil, err
		}
		return fmt.Sprintf("%s added to favorites", p.PerfumeID), nil
	}

	if err := s.db.RemoveFavorite(ctx, p.PerfumeID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("not a favorite: %s", p.PerfumeID)
		}
		return nil, err
	}
	return fmt.Sprintf("%s removed from favorites", p.PerfumeID), nil
}

func (s *Server) handleGetStats(ctx context.Context, params json.RawMessage) (any, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case uriShortlist:
		return s.getResourceShortlist(ctx)
	case uriFavorites:
		return s.getResourceFavorites(ctx)
	case uriFamilies:
		return s.getResourceFamilies(ctx)
	case uriProfile:
		return s.getResourceProfile()
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceShortlist(ctx context.Context) (string, error) {
	rows, err := s.advisor.Shortlist(ctx)
	if err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return "No recommendations on display. Call the recommend tool first.", nil
	}

	var sb strings.Builder
	sb.WriteString("Current Shortlist\n")
	sb.WriteString("=================\n\n")
	for _, r := range rows {
		star := ""
		if r.Favorite {
			star = " ★"
		}
		sb.WriteString(fmt.Sprintf("%d. %s by %s [%s]%s, %d%%\n",
			r.Rank, r.Perfume.Name, r.Perfume.Brand, r.Perfume.ID, star, r.Score))
		sb.WriteString(fmt.Sprintf("   %s\n", r.Explanation))
	}

	return sb.String(), nil
}

func (s *Server) getResourceFavorites(ctx context.Context) (string, error) {
	favorites, err := s.db.ListFavorites(ctx)
	if err != nil {
		return "", err
	}

	if len(favorites) == 0 {
		return "No favorites yet.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Favorites (%d)\n", len(favorites)))
	sb.WriteString("=============\n\n")
	for _, p := range favorites {
		sb.WriteString(fmt.Sprintf("• %s by %s [%s]: %s, %s, %.0f\n",
			p.Name, p.Brand, p.ID, p.ScentFamily, p.Concentration, p.Price))
	}

	return sb.String(), nil
}

func (s *Server) getResourceFamilies(ctx context.Context) (string, error) {
	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return "", err
	}

	if len(stats.ByFamily) == 0 {
		return "The catalog is empty.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scent Families (%d perfumes)\n", stats.TotalPerfumes))
	sb.WriteString("============================\n\n")
	for _, f := range stats.ByFamily {
		sb.WriteString(fmt.Sprintf("• %s: %d\n", f.Family, f.Count))
	}

	return sb.String(), nil
}

func (s *Server) getResourceProfile() (string, error) {
	prefs := s.config.Preferences.Profile()
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
