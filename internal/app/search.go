package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type SearchService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSearchService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, cache: c, cacheTTL: ttl}
}

// Search builds the typed filter from raw criteria and fetches one page.
// Result pages are cached briefly; search traffic is read-heavy and a
// slightly stale page is acceptable (same tolerance as the count/fetch
// read skew in the repo).
func (s *SearchService) Search(ctx context.Context, c domain.Criteria) (domain.HotelsPage, error) {
	f := domain.BuildFilter(c)
	sort := domain.ParseSort(c.SortOption)
	pg := domain.NewPageQuery(c.Page)

	key := searchKey(c, sort, pg)
	var page domain.HotelsPage
	ok, err := s.cache.Get(ctx, key, &page)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("search cache read failed")
	}
	if ok {
		return page, nil
	}

	page, err = s.repo.Search(ctx, f, sort, pg)
	if err != nil {
		return domain.HotelsPage{}, err
	}
	if err := s.cache.Set(ctx, key, page, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("search cache write failed")
	}
	return page, nil
}

func (s *SearchService) List(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.List(ctx)
}

func (s *SearchService) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	ok, err := s.cache.Get(ctx, key, &h)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("hotel cache read failed")
	}
	if ok {
		return h, nil
	}
	h, err = s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if err := s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("hotel cache write failed")
	}
	return h, nil
}

func hotelKey(id string) string { return "hotel:" + id }

// searchKey hashes the full criteria so distinct searches never
// collide. JSON encoding keeps the pre-hash bytes injective; a plain
// delimiter join is not, since criteria fields may contain the
// delimiter themselves.
func searchKey(c domain.Criteria, sort domain.SortOption, pg domain.PageQuery) string {
	raw, _ := json.Marshal(struct {
		C    domain.Criteria
		Sort domain.SortOption
		Page int
	}{C: c, Sort: sort, Page: pg.Page})
	sum := sha1.Sum(raw)
	return "search:" + hex.EncodeToString(sum[:])
}
