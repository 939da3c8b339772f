package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func seededState(users ...User) *ListState {
	s := NewListState(DefaultPageSize)
	s.SetReady(users)
	return s
}

func TestSearchFiltersFullCache(t *testing.T) {
	s := seededState(
		User{ID: 1, Name: "Admin", Email: "admin@admin.com"},
		User{ID: 2, Name: "User", Email: "user@example.com"},
	)

	s.SetSearch("adm")
	visible := s.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, int64(1), visible[0].ID)

	// The id is matched as a string too.
	s.SetSearch("2")
	visible = s.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, int64(2), visible[0].ID)

	s.SetSearch("")
	require.Len(t, s.Visible(), 2)
}

func TestToggleSortFlipsDirectionWithoutRefetch(t *testing.T) {
	users := []User{
		{ID: 1, Name: "Charlie"},
		{ID: 2, Name: "Alice"},
		{ID: 3, Name: "Bob"},
	}
	s := seededState(users...)
	cached := s.Users()

	s.ToggleSort(SortByName)
	key, direction, ok := s.Sort()
	require.True(t, ok)
	require.Equal(t, SortByName, key)
	require.Equal(t, Ascending, direction)
	require.Equal(t, "Alice", s.Visible()[0].Name)

	s.ToggleSort(SortByName)
	_, direction, _ = s.Sort()
	require.Equal(t, Descending, direction)
	require.Equal(t, "Charlie", s.Visible()[0].Name)

	// Only the derived order changes; the cached collection is untouched.
	require.Same(t, &cached[0], &s.Users()[0])
	require.Equal(t, int64(1), s.Users()[0].ID)

	// A new key resets to ascending.
	s.ToggleSort(SortByEmail)
	key, direction, _ = s.Sort()
	require.Equal(t, SortByEmail, key)
	require.Equal(t, Ascending, direction)
}

func TestSortTiesKeepOriginalOrder(t *testing.T) {
	s := seededState(
		User{ID: 1, Name: "Same", Email: "z@example.com"},
		User{ID: 2, Name: "Same", Email: "a@example.com"},
		User{ID: 3, Name: "Aaa", Email: "m@example.com"},
	)

	s.ToggleSort(SortByName)
	visible := s.Visible()
	require.Equal(t, int64(3), visible[0].ID)
	require.Equal(t, int64(1), visible[1].ID)
	require.Equal(t, int64(2), visible[2].ID)
}

func TestPaginationBoundsAndClamp(t *testing.T) {
	users := make([]User, 0, 25)
	for i := 1; i <= 25; i++ {
		users = append(users, User{
			ID:    int64(i),
			Name:  fmt.Sprintf("User %02d", i),
			Email: fmt.Sprintf("user%02d@example.com", i),
		})
	}
	s := seededState(users...)

	require.Equal(t, 3, s.TotalPages())
	require.False(t, s.CanPrev())
	require.True(t, s.CanNext())

	s.NextPage()
	s.NextPage()
	require.Equal(t, 3, s.Page())
	require.False(t, s.CanNext())
	require.Len(t, s.Visible(), 5)

	// Prev/next are no-ops at the bounds.
	s.NextPage()
	require.Equal(t, 3, s.Page())

	// A narrowing search clamps the page back into range.
	s.SetSearch("user0")
	require.Equal(t, 1, s.Page())

	s.SetSearch("")
	s.SetPage(99)
	require.Equal(t, 3, s.Page())
	s.SetPage(-1)
	require.Equal(t, 1, s.Page())
}

func TestApplyMutationsPatchCache(t *testing.T) {
	s := seededState(
		User{ID: 1, Name: "Admin", Role: 1},
		User{ID: 2, Name: "Old Name", Role: 0},
	)

	s.ApplyUpdate(User{ID: 2, Name: "New Name", Role: 0})
	require.Equal(t, "New Name", s.Users()[1].Name)

	// Unknown ids leave the cache untouched.
	s.ApplyUpdate(User{ID: 99, Name: "Ghost"})
	require.Len(t, s.Users(), 2)

	s.ApplyCreate(User{ID: 3, Name: "Created", Role: 0})
	require.Len(t, s.Users(), 3)

	s.ApplyDelete(2)
	require.Len(t, s.Users(), 2)
	require.Equal(t, int64(1), s.Users()[0].ID)
	require.Equal(t, int64(3), s.Users()[1].ID)
}

func TestDeleteClampsPage(t *testing.T) {
	users := make([]User, 0, 11)
	for i := 1; i <= 11; i++ {
		users = append(users, User{ID: int64(i), Name: fmt.Sprintf("User %d", i)})
	}
	s := seededState(users...)
	s.SetPage(2)
	require.Len(t, s.Visible(), 1)

	// Removing the only record on the last page moves the view back.
	s.ApplyDelete(11)
	require.Equal(t, 1, s.Page())
	require.Len(t, s.Visible(), DefaultPageSize)
}

func TestLifecyclePhases(t *testing.T) {
	s := NewListState(0)
	require.Equal(t, PhaseLoading, s.Phase())

	s.SetFailed("no authentication token found")
	require.Equal(t, PhaseFailed, s.Phase())
	require.Equal(t, "no authentication token found", s.Err())

	s.SetReady([]User{{ID: 1}})
	require.Equal(t, PhaseReady, s.Phase())
	require.Empty(t, s.Err())
}
