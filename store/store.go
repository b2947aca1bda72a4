package store

import (
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/models"
)

// Signal is the informational outcome of a store mutation. Not-found and
// already-exists conditions are signals, never errors: the operation still
// succeeds as a no-op and the caller decides how to surface it.
type Signal int

const (
	SignalAdded Signal = iota
	SignalUpdated
	SignalRemoved
	SignalAlreadyExists
	SignalNotFound
)

// Store gives synchronous read-modify-write access to the cart, wishlist
// and userData collections on top of a Backend, and broadcasts every write
// on the notification bus. Each operation holds the store lock for its
// whole read-modify-write so rapid successive mutations cannot interleave.
type Store struct {
	mu      sync.Mutex
	backend Backend
	bus     *bus.Bus
	catalog *catalog.Catalog
	session string
}

// New creates a store over backend. bus may be nil (no notifications);
// cat is required for progress computation. session tags bus messages so
// per-session listeners can filter.
func New(backend Backend, b *bus.Bus, cat *catalog.Catalog, session string) *Store {
	return &Store{backend: backend, bus: b, catalog: cat, session: session}
}

// readCollection deserializes the named collection. Malformed JSON must
// not escape this boundary: the caller always receives the zero value and
// false for absent or corrupt state.
func readCollection[T any](backend Backend, key string) (T, bool) {
	var value T
	raw, ok := backend.Get(key)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		log.Printf("Corrupt %s collection, falling back to default: %v", key, err)
		var zero T
		return zero, false
	}
	return value, true
}

// writeCollection serializes and stores the collection, refreshing its TTL,
// then notifies the bus. A storage failure is logged and the in-memory
// state stays stale; a notify failure never fails the write.
func (s *Store) writeCollection(key string, value interface{}, notify bool) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.backend.Set(key, string(raw)); err != nil {
		log.Printf("Failed to persist %s: %v", key, err)
		return err
	}
	if notify && s.bus != nil {
		if err := s.bus.Publish(key, s.session); err != nil {
			log.Printf("Failed to broadcast %s update: %v", key, err)
		}
	}
	return nil
}

// Cart returns the cart collection, empty when absent
func (s *Store) Cart() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartLocked()
}

func (s *Store) cartLocked() []models.CartItem {
	items, ok := readCollection[[]models.CartItem](s.backend, KeyCart)
	if !ok || items == nil {
		return []models.CartItem{}
	}
	return items
}

// SetCart overwrites the whole cart collection
func (s *Store) SetCart(items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeCollection(KeyCart, items, true)
}

// AppendCart adds a course to the cart, incrementing the quantity when the
// course is already present. Quantities below 1 are treated as 1 so the
// cart can never hold a non-positive quantity.
func (s *Store) AppendCart(courseID string, quantity int) (Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	cart := s.cartLocked()
	for i := range cart {
		if cart[i].ID == courseID {
			cart[i].Quantity += quantity
			return SignalUpdated, s.writeCollection(KeyCart, cart, true)
		}
	}

	cart = append(cart, models.CartItem{ID: courseID, Quantity: quantity})
	return SignalAdded, s.writeCollection(KeyCart, cart, true)
}

// UpdateCartItemQuantity overwrites a cart line's quantity. A quantity of
// zero or less removes the line; an absent course is a NotFound signal.
func (s *Store) UpdateCartItemQuantity(courseID string, quantity int) (Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked()
	for i := range cart {
		if cart[i].ID != courseID {
			continue
		}
		if quantity <= 0 {
			cart = append(cart[:i], cart[i+1:]...)
			return SignalRemoved, s.writeCollection(KeyCart, cart, true)
		}
		cart[i].Quantity = quantity
		return SignalUpdated, s.writeCollection(KeyCart, cart, true)
	}
	return SignalNotFound, nil
}

// RemoveCartItem removes a course from the cart, NotFound when absent
func (s *Store) RemoveCartItem(courseID string) (Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartLocked()
	for i := range cart {
		if cart[i].ID == courseID {
			cart = append(cart[:i], cart[i+1:]...)
			return SignalRemoved, s.writeCollection(KeyCart, cart, true)
		}
	}
	return SignalNotFound, nil
}

// ClearCart destroys the cart collection
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(KeyCart); err != nil {
		return err
	}
	if s.bus != nil {
		if err := s.bus.Publish(KeyCart, s.session); err != nil {
			log.Printf("Failed to broadcast %s update: %v", KeyCart, err)
		}
	}
	return nil
}

// CartItemIDs returns the course IDs currently in the cart
func (s *Store) CartItemIDs() []string {
	cart := s.Cart()
	ids := make([]string, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ID)
	}
	return ids
}

// Wishlist returns the wishlist collection, empty when absent
func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistLocked()
}

func (s *Store) wishlistLocked() []string {
	list, ok := readCollection[[]string](s.backend, KeyWishlist)
	if !ok || list == nil {
		return []string{}
	}
	return list
}

// SetWishlist overwrites the whole wishlist collection
func (s *Store) SetWishlist(list []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeCollection(KeyWishlist, list, true)
}

// AppendWishlist adds a course to the wishlist. The wishlist is a set:
// appending a present ID is a no-op with an AlreadyExists signal.
func (s *Store) AppendWishlist(courseID string) (Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.wishlistLocked()
	for _, id := range list {
		if id == courseID {
			return SignalAlreadyExists, nil
		}
	}

	list = append(list, courseID)
	return SignalAdded, s.writeCollection(KeyWishlist, list, true)
}

// RemoveWishlistItem removes a course from the wishlist, NotFound when absent
func (s *Store) RemoveWishlistItem(courseID string) (Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.wishlistLocked()
	for i, id := range list {
		if id == courseID {
			list = append(list[:i], list[i+1:]...)
			return SignalRemoved, s.writeCollection(KeyWishlist, list, true)
		}
	}
	return SignalNotFound, nil
}

// ClearWishlist destroys the wishlist collection
func (s *Store) ClearWishlist() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(KeyWishlist); err != nil {
		return err
	}
	if s.bus != nil {
		if err := s.bus.Publish(KeyWishlist, s.session); err != nil {
			log.Printf("Failed to broadcast %s update: %v", KeyWishlist, err)
		}
	}
	return nil
}

// UserData returns the profile, writing the hard-coded default on first
// access when no userData collection exists yet
func (s *Store) UserData() models.UserData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userDataLocked()
}

func (s *Store) userDataLocked() models.UserData {
	data, ok := readCollection[models.UserData](s.backend, KeyUserData)
	if !ok {
		data = models.DefaultUserData()
		// First touch creates the collection without a change broadcast,
		// matching the lazy-create behaviour of the front-end.
		if err := s.writeCollection(KeyUserData, data, false); err != nil {
			log.Printf("Failed to seed default profile: %v", err)
		}
	}
	if data.EnrolledCourses == nil {
		data.EnrolledCourses = []string{}
	}
	if data.Progress == nil {
		data.Progress = []models.Progress{}
	}
	return data
}

// SetUserData overwrites the profile
func (s *Store) SetUserData(data models.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeCollection(KeyUserData, data, true)
}

// ClearUserData destroys the profile collection
func (s *Store) ClearUserData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(KeyUserData); err != nil {
		return err
	}
	if s.bus != nil {
		if err := s.bus.Publish(KeyUserData, s.session); err != nil {
			log.Printf("Failed to broadcast %s update: %v", KeyUserData, err)
		}
	}
	return nil
}

// EnrolledCourseIDs returns the enrolled course set
func (s *Store) EnrolledCourseIDs() []string {
	data := s.UserData()
	return data.EnrolledCourses
}

// RecordCourseView marks a course as viewed. Viewing enrolls: the course
// joins the enrolled set and gets a progress entry, and lastAccessed moves
// to now. This is the explicit, named form of the implicit enrollment side
// effect so it stays testable outside the UI.
func (s *Store) RecordCourseView(courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.userDataLocked()
	s.ensureEnrolled(&data, courseID)

	progress := data.ProgressFor(courseID)
	progress.LastAccessed = time.Now().UTC().Format(time.RFC3339)

	return s.writeCollection(KeyUserData, data, true)
}

// RecordLectureCompletion appends a completed lecture and recomputes the
// overall percentage from the catalog's lecture count. The completed list
// is intentionally not deduplicated, matching the persisted contract, so
// double completions inflate the percentage.
func (s *Store) RecordLectureCompletion(courseID, lectureID string) (models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.userDataLocked()
	s.ensureEnrolled(&data, courseID)

	progress := data.ProgressFor(courseID)
	progress.CompletedLectures = append(progress.CompletedLectures, lectureID)
	progress.OverallProgress = overallProgress(len(progress.CompletedLectures), s.catalog.TotalLectures(courseID))
	progress.LastAccessed = time.Now().UTC().Format(time.RFC3339)

	return *progress, s.writeCollection(KeyUserData, data, true)
}

// RecordQuizResult upserts a quiz attempt on the course progress entry,
// keyed by quiz ID, and enrolls the course if needed
func (s *Store) RecordQuizResult(courseID, quizID string, score float64, completed bool) (models.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.userDataLocked()
	s.ensureEnrolled(&data, courseID)

	progress := data.ProgressFor(courseID)
	progress.LastAccessed = time.Now().UTC().Format(time.RFC3339)

	updated := false
	for i := range progress.QuizResults {
		if progress.QuizResults[i].QuizID == quizID {
			progress.QuizResults[i].Score = score
			progress.QuizResults[i].Completed = completed
			updated = true
			break
		}
	}
	if !updated {
		progress.QuizResults = append(progress.QuizResults, models.QuizResult{
			QuizID:    quizID,
			Score:     score,
			Completed: completed,
		})
	}

	return *progress, s.writeCollection(KeyUserData, data, true)
}

// ensureEnrolled keeps enrolledCourses a superset of the progress entries:
// the course ID joins the enrolled set and receives an empty progress
// entry when missing.
func (s *Store) ensureEnrolled(data *models.UserData, courseID string) {
	if !data.IsEnrolled(courseID) {
		data.EnrolledCourses = append(data.EnrolledCourses, courseID)
	}
	if data.ProgressFor(courseID) == nil {
		data.Progress = append(data.Progress, models.Progress{
			CourseID:          courseID,
			CompletedLectures: []string{},
			QuizResults:       []models.QuizResult{},
			OverallProgress:   0,
			LastAccessed:      time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// overallProgress is round(100 * completed / total). No clamp: the
// completed list may double-count, which is surfaced rather than hidden.
func overallProgress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
