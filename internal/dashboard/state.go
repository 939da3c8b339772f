package dashboard

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// Phase is the lifecycle of the list view.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

// SortKey selects the column the list is ordered by.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortByEmail SortKey = "email"
)

// SortDirection is the order of the active sort key.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

type sortConfig struct {
	key       SortKey
	direction SortDirection
}

// DefaultPageSize matches the dashboard table.
const DefaultPageSize = 10

// ListState holds the cached collection and the view parameters. After the
// single fetch, search, sort and pagination are pure derivations over the
// cache; they never trigger another request.
type ListState struct {
	phase    Phase
	errMsg   string
	users    []User
	search   string
	sort     *sortConfig
	page     int
	pageSize int
}

// NewListState starts in the loading phase.
func NewListState(pageSize int) *ListState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListState{phase: PhaseLoading, page: 1, pageSize: pageSize}
}

// Load performs the one fetch and transitions to ready or failed.
func (s *ListState) Load(ctx context.Context, client *Client, filter domain.RoleFilter) error {
	users, err := client.FetchUsers(ctx, filter)
	if err != nil {
		s.phase = PhaseFailed
		s.errMsg = err.Error()
		return err
	}
	s.SetReady(users)
	return nil
}

// SetReady installs a fetched collection.
func (s *ListState) SetReady(users []User) {
	s.phase = PhaseReady
	s.errMsg = ""
	s.users = users
	s.page = 1
}

// SetFailed records a fetch failure.
func (s *ListState) SetFailed(message string) {
	s.phase = PhaseFailed
	s.errMsg = message
}

// Phase reports the current lifecycle phase.
func (s *ListState) Phase() Phase {
	return s.phase
}

// Err returns the failure message, empty unless failed.
func (s *ListState) Err() string {
	return s.errMsg
}

// Users returns the cached collection in original order.
func (s *ListState) Users() []User {
	return s.users
}

// SetSearch updates the filter term and clamps the page, since a narrower
// result set can strand the view past the last page.
func (s *ListState) SetSearch(term string) {
	s.search = term
	s.clampPage()
}

// Search returns the active filter term.
func (s *ListState) Search() string {
	return s.search
}

// ToggleSort activates a sort key. Re-selecting the active key flips the
// direction; a new key resets to ascending.
func (s *ListState) ToggleSort(key SortKey) {
	if s.sort != nil && s.sort.key == key && s.sort.direction == Ascending {
		s.sort = &sortConfig{key: key, direction: Descending}
		return
	}
	s.sort = &sortConfig{key: key, direction: Ascending}
}

// Sort reports the active sort key and direction; ok is false when unsorted.
func (s *ListState) Sort() (SortKey, SortDirection, bool) {
	if s.sort == nil {
		return "", Ascending, false
	}
	return s.sort.key, s.sort.direction, true
}

// Filtered derives the sorted, filtered collection. Sorting is stable so
// equal keys keep their original order; filtering is a case-insensitive
// substring match over id, name and email, always against the full cache.
func (s *ListState) Filtered() []User {
	sorted := make([]User, len(s.users))
	copy(sorted, s.users)

	if s.sort != nil {
		key, direction := s.sort.key, s.sort.direction
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := sortField(sorted[i], key), sortField(sorted[j], key)
			if direction == Descending {
				return a > b
			}
			return a < b
		})
	}

	if s.search == "" {
		return sorted
	}

	term := strings.ToLower(s.search)
	filtered := make([]User, 0, len(sorted))
	for _, user := range sorted {
		if matches(user, term) {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

func sortField(user User, key SortKey) string {
	if key == SortByEmail {
		return user.Email
	}
	return user.Name
}

func matches(user User, term string) bool {
	return strings.Contains(strconv.FormatInt(user.ID, 10), term) ||
		strings.Contains(strings.ToLower(user.Name), term) ||
		strings.Contains(strings.ToLower(user.Email), term)
}

// Visible derives the current page of the filtered collection.
func (s *ListState) Visible() []User {
	filtered := s.Filtered()
	start := (s.page - 1) * s.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + s.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Page returns the current 1-based page index.
func (s *ListState) Page() int {
	return s.page
}

// TotalPages derives the page count for the filtered collection.
func (s *ListState) TotalPages() int {
	total := len(s.Filtered())
	if total == 0 {
		return 1
	}
	return (total + s.pageSize - 1) / s.pageSize
}

// SetPage moves to the given page, clamped to valid bounds.
func (s *ListState) SetPage(page int) {
	s.page = page
	s.clampPage()
}

// NextPage advances one page when possible.
func (s *ListState) NextPage() {
	if s.CanNext() {
		s.page++
	}
}

// PrevPage goes back one page when possible.
func (s *ListState) PrevPage() {
	if s.CanPrev() {
		s.page--
	}
}

// CanNext reports whether a next page exists.
func (s *ListState) CanNext() bool {
	return s.page < s.TotalPages()
}

// CanPrev reports whether a previous page exists.
func (s *ListState) CanPrev() bool {
	return s.page > 1
}

func (s *ListState) clampPage() {
	if s.page < 1 {
		s.page = 1
	}
	if max := s.TotalPages(); s.page > max {
		s.page = max
	}
}

// ApplyCreate appends a created record to the cache instead of refetching.
func (s *ListState) ApplyCreate(user User) {
	s.users = append(s.users, user)
}

// ApplyUpdate patches the cache by id instead of refetching. Unknown ids are
// ignored, leaving the cache untouched.
func (s *ListState) ApplyUpdate(user User) {
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = user
			return
		}
	}
}

// ApplyDelete removes a record by id and clamps the page, so a shrinking
// last page cannot strand the view.
func (s *ListState) ApplyDelete(id int64) {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}
	s.clampPage()
}
