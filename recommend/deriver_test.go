package recommend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/models"
	"github.com/phungle2508/antoree-backend/recommend"
	"github.com/phungle2508/antoree-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Course{
		{ID: "c1", Title: "Go Basics"},
		{ID: "c2", Title: "Advanced Go"},
		{ID: "c3", Title: "Web APIs"},
		{ID: "c4", Title: "Databases"},
		{ID: "c5", Title: "Testing"},
	})
}

func newTestStore() *store.Store {
	return store.New(store.NewMemoryBackend(0), bus.New(), testCatalog(), "test-session")
}

func fakeService(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestExclusionSetUnionsEnrolledWishlistCart(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.RecordCourseView("c1"))
	_, err := s.AppendWishlist("c2")
	require.NoError(t, err)
	_, err = s.AppendCart("c3", 1)
	require.NoError(t, err)
	// Overlap between the three sources must not matter
	_, err = s.AppendWishlist("c1")
	require.NoError(t, err)

	d := recommend.NewDeriver(recommend.NewClient("http://unused", time.Second), testCatalog(), 4)
	excluded := d.ExclusionSet(s)

	assert.Equal(t, map[string]bool{"c1": true, "c2": true, "c3": true}, excluded)
}

// The service is untrusted: even when it returns excluded IDs, the
// derived list must not contain them
func TestRecommendedFiltersExcludedRegardlessOfService(t *testing.T) {
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []recommend.CourseRecommendation{
			{ID: "c1", Score: 0.99}, // enrolled, must be dropped
			{ID: "c4", Score: 0.8},
			{ID: "c2", Score: 0.7}, // wishlisted, must be dropped
			{ID: "c5", Score: 0.6},
		})
	})

	s := newTestStore()
	require.NoError(t, s.RecordCourseView("c1"))
	_, err := s.AppendWishlist("c2")
	require.NoError(t, err)

	d := recommend.NewDeriver(recommend.NewClient(srv.URL, time.Second), testCatalog(), 4)
	courses := d.Recommended(s, "sess-a")

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c4", "c5"}, ids, "service ranking preserved, exclusions enforced")
}

func TestRecommendedDropsUnknownAndDuplicateIDs(t *testing.T) {
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []recommend.CourseRecommendation{
			{ID: "c4", Score: 0.9},
			{ID: "ghost", Score: 0.85},
			{ID: "c4", Score: 0.8},
			{ID: "c5", Score: 0.7},
		})
	})

	d := recommend.NewDeriver(recommend.NewClient(srv.URL, time.Second), testCatalog(), 4)
	courses := d.Recommended(newTestStore(), "sess-b")

	require.Len(t, courses, 2)
	assert.Equal(t, "c4", courses[0].ID)
	assert.Equal(t, "c5", courses[1].ID)
}

// Concurrent derivations for one session must coalesce into a single
// outstanding service call
func TestRecommendedCoalescesConcurrentCalls(t *testing.T) {
	var calls int64
	release := make(chan struct{})
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		<-release
		writeJSON(t, w, []recommend.CourseRecommendation{
			{ID: "c4", Score: 0.9},
			{ID: "c5", Score: 0.8},
		})
	})

	s := newTestStore()
	d := recommend.NewDeriver(recommend.NewClient(srv.URL, 5*time.Second), testCatalog(), 4)

	const workers = 8
	results := make(chan []models.Course, workers)
	for i := 0; i < workers; i++ {
		go func() {
			results <- d.Recommended(s, "sess-coalesce")
		}()
	}

	// Let the first call reach the service and the rest pile up behind it
	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 1
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)

	for i := 0; i < workers; i++ {
		select {
		case courses := <-results:
			require.Len(t, courses, 2)
			assert.Equal(t, "c4", courses[0].ID)
		case <-time.After(2 * time.Second):
			t.Fatal("a coalesced call never returned")
		}
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "concurrent calls must share one in-flight request")
}

func TestRecommendedDegradesToEmptyOnServiceError(t *testing.T) {
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	d := recommend.NewDeriver(recommend.NewClient(srv.URL, time.Second), testCatalog(), 4)
	courses := d.Recommended(newTestStore(), "sess-c")

	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestRecommendedDegradesToEmptyOnUnreachableService(t *testing.T) {
	d := recommend.NewDeriver(recommend.NewClient("http://127.0.0.1:1", 200*time.Millisecond), testCatalog(), 4)
	courses := d.Recommended(newTestStore(), "sess-d")

	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestRecommendBatchSendsExclusionsAsRepeatedParams(t *testing.T) {
	var gotIDs []string
	var gotTopK string
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recommend/batch", r.URL.Path)
		gotIDs = r.URL.Query()["course_ids"]
		gotTopK = r.URL.Query().Get("top_k")
		writeJSON(t, w, []recommend.CourseRecommendation{})
	})

	client := recommend.NewClient(srv.URL, time.Second)
	_, err := client.RecommendBatch([]string{"c1", "c2"}, 6)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"c1", "c2"}, gotIDs)
	assert.Equal(t, "6", gotTopK)
}

func TestSimilarExcludesTheCourseItself(t *testing.T) {
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recommend", r.URL.Path)
		require.Equal(t, "c1", r.URL.Query().Get("course_id"))
		writeJSON(t, w, []recommend.CourseRecommendation{
			{ID: "c1", Score: 1.0}, // the service echoing the anchor back
			{ID: "c2", Score: 0.9},
		})
	})

	d := recommend.NewDeriver(recommend.NewClient(srv.URL, time.Second), testCatalog(), 4)
	courses := d.Similar("c1")

	require.Len(t, courses, 1)
	assert.Equal(t, "c2", courses[0].ID)
}

func TestChatForwardsQueryAndTopK(t *testing.T) {
	srv := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, "learn go", r.URL.Query().Get("query"))
		require.Equal(t, "4", r.URL.Query().Get("top_k"))
		writeJSON(t, w, recommend.ChatResult{
			Score:   0.77,
			Courses: []recommend.CourseRecommendation{{ID: "c3", Score: 0.77}},
		})
	})

	d := recommend.NewDeriver(recommend.NewClient(srv.URL, time.Second), testCatalog(), 4)
	result, err := d.Chat("learn go")
	require.NoError(t, err)

	assert.Equal(t, 0.77, result.Score)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "c3", result.Courses[0].ID)
}
