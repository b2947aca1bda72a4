package recommend

import (
	"log"
	"time"

	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/models"
	"github.com/phungle2508/antoree-backend/store"

	"golang.org/x/sync/singleflight"
)

// DefaultDeriver is the global deriver instance wired at startup
var DefaultDeriver *Deriver

// Init creates the global AI client and deriver
func Init(baseURL string, timeout time.Duration, topK int, cat *catalog.Catalog) {
	DefaultDeriver = NewDeriver(NewClient(baseURL, timeout), cat, topK)
}

// Deriver produces ranked course recommendations the user has not already
// engaged with. Scoring is delegated to the external AI service; the
// exclusion guarantee is enforced locally regardless of what the service
// returns.
type Deriver struct {
	client  *Client
	catalog *catalog.Catalog
	topK    int
	group   singleflight.Group
}

// NewDeriver wires the deriver to the AI client and the static catalog
func NewDeriver(client *Client, cat *catalog.Catalog, topK int) *Deriver {
	return &Deriver{client: client, catalog: cat, topK: topK}
}

// ExclusionSet is the union of enrolled, wishlisted and cart course IDs,
// read from the store
func (d *Deriver) ExclusionSet(s *store.Store) map[string]bool {
	excluded := make(map[string]bool)
	for _, id := range s.EnrolledCourseIDs() {
		excluded[id] = true
	}
	for _, id := range s.Wishlist() {
		excluded[id] = true
	}
	for _, id := range s.CartItemIDs() {
		excluded[id] = true
	}
	return excluded
}

// Recommended returns full catalog records for the service's ranking,
// never including an excluded course and never failing: any service error
// degrades to an empty list. Concurrent calls for the same session
// coalesce into one outstanding request.
func (d *Deriver) Recommended(s *store.Store, session string) []models.Course {
	excluded := d.ExclusionSet(s)

	excludedIDs := make([]string, 0, len(excluded))
	for id := range excluded {
		excludedIDs = append(excludedIDs, id)
	}

	result, err, _ := d.group.Do("recommend:"+session, func() (interface{}, error) {
		return d.client.RecommendBatch(excludedIDs, d.topK)
	})
	if err != nil {
		// Recommendations are non-critical: degrade to empty, never error
		log.Printf("Recommendation fetch failed, returning none: %v", err)
		return []models.Course{}
	}

	recommendations := result.([]CourseRecommendation)
	return d.filter(recommendations, excluded)
}

// filter drops excluded and unknown IDs and maps the survivors to catalog
// records, preserving the service's ranking. The service is untrusted to
// honor exclusions, so they are applied again here.
func (d *Deriver) filter(recommendations []CourseRecommendation, excluded map[string]bool) []models.Course {
	out := []models.Course{}
	seen := make(map[string]bool)
	for _, rec := range recommendations {
		if excluded[rec.ID] || seen[rec.ID] {
			continue
		}
		course, ok := d.catalog.ByID(rec.ID)
		if !ok {
			continue
		}
		seen[rec.ID] = true
		out = append(out, course)
	}
	return out
}

// Chat forwards a chat-widget query to the scoring service
func (d *Deriver) Chat(query string) (ChatResult, error) {
	return d.client.Chat(query, d.topK)
}

// Similar returns catalog records for courses similar to one course,
// using the single-course service endpoint. Same degraded failure mode.
func (d *Deriver) Similar(courseID string) []models.Course {
	recommendations, err := d.client.Recommend(courseID, d.topK)
	if err != nil {
		log.Printf("Similar-course fetch failed, returning none: %v", err)
		return []models.Course{}
	}
	return d.filter(recommendations, map[string]bool{courseID: true})
}
