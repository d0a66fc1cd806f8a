package viewer

import (
	"errors"
	"testing"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

var (
	flareX5 = domain.FlareRecord{ID: "x5", ClassType: "X5", SourceLocation: "N10E20"}
	flareM3 = domain.FlareRecord{ID: "m3", ClassType: "M3", SourceLocation: "S5W10"}
)

func TestStore_BeginSetsLoading(t *testing.T) {
	s := NewStore(1)
	r := mustRange(t, "2024-05-01", "2024-05-02")

	ticket := s.Begin(r)

	state := s.Snapshot()
	assert.True(t, state.Loading)
	assert.Equal(t, r, state.Range)
	assert.Equal(t, uint64(1), ticket.Generation)
	assert.Equal(t, ticket.Generation, state.Generation)
	assert.Nil(t, state.Selection)
}

func TestStore_ApplySuccess(t *testing.T) {
	s := NewStore(2)
	ticket := s.Begin(mustRange(t, "2024-05-01", "2024-05-02"))

	state, ok := s.Apply(ticket, "fetch-1", []domain.FlareRecord{flareM3, flareX5}, nil)
	require.True(t, ok)

	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	require.NotNil(t, state.Selection)
	assert.Equal(t, "x5", state.Selection.Flare.ID)
	assert.Equal(t, "fetch-1", state.Selection.FetchID)
	require.NotNil(t, state.Selection.Marker)
	assert.InDelta(t, 2, state.Selection.Marker.Position.Norm(), 1e-9)
	assert.Equal(t, state, s.Snapshot())
}

func TestStore_ApplyErrorKeepsSelection(t *testing.T) {
	s := NewStore(1)
	first := s.Begin(mustRange(t, "2024-05-01", "2024-05-02"))
	_, ok := s.Apply(first, "fetch-1", []domain.FlareRecord{flareX5}, nil)
	require.True(t, ok)

	second := s.Begin(mustRange(t, "2024-06-01", "2024-06-02"))
	assert.NoError(t, s.Snapshot().Err, "Begin clears the previous error")

	upstream := &domain.UpstreamStatusError{StatusCode: 503}
	state, ok := s.Apply(second, "fetch-2", nil, upstream)
	require.True(t, ok)

	assert.False(t, state.Loading)
	assert.ErrorIs(t, state.Err, upstream)
	require.NotNil(t, state.Selection)
	assert.Equal(t, "x5", state.Selection.Flare.ID, "previous selection kept")
	assert.Equal(t, "fetch-1", state.Selection.FetchID)
}

func TestStore_ApplyEmptyBatchClearsSelection(t *testing.T) {
	s := NewStore(1)
	first := s.Begin(mustRange(t, "2024-05-01", "2024-05-02"))
	s.Apply(first, "fetch-1", []domain.FlareRecord{flareX5}, nil)

	second := s.Begin(mustRange(t, "2024-06-01", "2024-06-02"))
	state, ok := s.Apply(second, "fetch-2", []domain.FlareRecord{}, nil)
	require.True(t, ok)

	require.NotNil(t, state.Selection)
	assert.False(t, state.Selection.HasFlare())
	assert.Nil(t, state.Selection.Marker)
}

func TestStore_StaleTicketDiscarded(t *testing.T) {
	s := NewStore(1)
	older := s.Begin(mustRange(t, "2024-05-01", "2024-05-02"))
	newer := s.Begin(mustRange(t, "2024-06-01", "2024-06-02"))

	_, ok := s.Apply(newer, "fetch-new", []domain.FlareRecord{flareM3}, nil)
	require.True(t, ok)

	state, ok := s.Apply(older, "fetch-old", []domain.FlareRecord{flareX5}, nil)
	assert.False(t, ok)
	assert.Equal(t, "m3", state.Selection.Flare.ID)

	_, ok = s.Apply(older, "fetch-old", nil, errors.New("late failure"))
	assert.False(t, ok)
	assert.NoError(t, s.Snapshot().Err)
}

func TestNewStore_DefaultRadius(t *testing.T) {
	assert.Equal(t, domain.DefaultSunRadius, NewStore(0).Radius())
	assert.Equal(t, 6.96, NewStore(6.96).Radius())
}
