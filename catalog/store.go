package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rushteam/recserve/core"
)

// Store reads the product domain out of MySQL. Each request takes one
// snapshot (products, engagement aggregates, reviews); the three queries run
// concurrently and any failure fails the whole snapshot, which in turn fails
// the request: there is no base data to join against without it.
type Store struct {
	db    *gorm.DB
	cache *EngagementCache
}

// NewStore wraps a gorm handle. cache may be nil; engagement aggregates then
// always hit SQL.
func NewStore(db *gorm.DB, cache *EngagementCache) *Store {
	return &Store{db: db, cache: cache}
}

// Open connects to MySQL with gorm's own logging silenced; query errors
// surface through the snapshot path.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

type productRow struct {
	ProductID int64  `gorm:"column:product_id"`
	Name      string `gorm:"column:name"`
	ImageURL  string `gorm:"column:image_url"`
}

type reviewRow struct {
	ProductID int64   `gorm:"column:product_id"`
	Rating    float64 `gorm:"column:rating"`
	Comment   string  `gorm:"column:comment"`
}

type engagementRow struct {
	ProductID       int64   `gorm:"column:product_id"`
	EngagementScore float64 `gorm:"column:engagement_score"`
}

type browsingRow struct {
	ProductID      int64 `gorm:"column:product_id"`
	BrowsingAction int64 `gorm:"column:browsing_action"`
}

// Snapshot fetches the full product domain for one request. Product order is
// product_id ascending; that order is what makes per-signal tie-breaks and
// the session fallback list deterministic.
func (s *Store) Snapshot(ctx context.Context) (*core.CatalogSnapshot, error) {
	var (
		products   []productRow
		reviews    []reviewRow
		engagement map[int64]core.Engagement
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Table("products").
			Select("product_id, name, image_url").
			Order("product_id").
			Scan(&products).Error
		if err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.WithContext(gctx).
			Table("reviews").
			Select("product_id, rating, comment").
			Order("product_id").
			Scan(&reviews).Error
		if err != nil {
			return fmt.Errorf("fetch reviews: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		engagement, err = s.fetchEngagement(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &core.CatalogSnapshot{
		ProductIDs: make([]int64, 0, len(products)),
		Products:   make(map[int64]core.Product, len(products)),
		Engagement: engagement,
		Reviews:    make(map[int64][]core.Review),
	}
	for _, p := range products {
		snapshot.ProductIDs = append(snapshot.ProductIDs, p.ProductID)
		snapshot.Products[p.ProductID] = core.Product{
			ID:    p.ProductID,
			Name:  p.Name,
			Image: p.ImageURL,
		}
	}
	for _, r := range reviews {
		snapshot.Reviews[r.ProductID] = append(snapshot.Reviews[r.ProductID], core.Review{
			Rating:  r.Rating,
			Comment: r.Comment,
		})
	}
	return snapshot, nil
}

// fetchEngagement merges mean social engagement with summed browsing actions
// per product, going through the Redis cache when one is configured. A cache
// failure is a miss, never a request failure.
func (s *Store) fetchEngagement(ctx context.Context) (map[int64]core.Engagement, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	var social []engagementRow
	err := s.db.WithContext(ctx).
		Table("social_media_data").
		Select("product_id, AVG(engagement_score) AS engagement_score").
		Group("product_id").
		Scan(&social).Error
	if err != nil {
		return nil, fmt.Errorf("fetch engagement aggregates: %w", err)
	}

	var browsing []browsingRow
	err = s.db.WithContext(ctx).
		Table("browsing_history").
		Select("product_id, SUM(action) AS browsing_action").
		Group("product_id").
		Scan(&browsing).Error
	if err != nil {
		return nil, fmt.Errorf("fetch browsing aggregates: %w", err)
	}

	out := make(map[int64]core.Engagement, len(social))
	for _, row := range social {
		e := out[row.ProductID]
		e.EngagementScore = row.EngagementScore
		out[row.ProductID] = e
	}
	for _, row := range browsing {
		e := out[row.ProductID]
		e.BrowsingAction = row.BrowsingAction
		out[row.ProductID] = e
	}

	if s.cache != nil {
		s.cache.Set(ctx, out)
	}
	return out, nil
}

// RecentTransactions returns the user's n most recent purchases,
// oldest to newest, which is the order the session model expects.
func (s *Store) RecentTransactions(ctx context.Context, userID int64, n int) ([]int64, error) {
	var rows []struct {
		ProductID int64 `gorm:"column:product_id"`
	}
	err := s.db.WithContext(ctx).
		Table("transactions").
		Select("product_id").
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ProductID
	}
	return oldestFirst(ids), nil
}

// oldestFirst reverses a newest-first fetch into the oldest-to-newest
// order the session model's sequence contract expects.
func oldestFirst(ids []int64) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

var (
	_ core.CatalogStore     = (*Store)(nil)
	_ core.TransactionStore = (*Store)(nil)
)
