package load

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday/masterdata/internal/batch"
	"github.com/matchday/masterdata/internal/domain"
)

// fakeTeamStore keeps teams in memory, keyed by name.
type fakeTeamStore struct {
	mu     sync.Mutex
	byName map[string]*domain.Team
	nextID int64
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{byName: map[string]*domain.Team{}, nextID: 1}
}

func (f *fakeTeamStore) Upsert(_ context.Context, t *domain.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byName[t.Name]; ok {
		id := existing.ID
		stored := *t
		stored.ID = id
		f.byName[t.Name] = &stored
		return nil
	}
	stored := *t
	stored.ID = f.nextID
	f.nextID++
	f.byName[t.Name] = &stored
	return nil
}

// failingResolver simulates lookup infrastructure failure.
type failingResolver struct{ err error }

func (f failingResolver) FindIDByCode(context.Context, string) (int64, bool, error) {
	return 0, false, f.err
}

func teamRec(values ...string) batch.RawRecord {
	return batch.RawRecord{Line: 2, Columns: teamColumns, Values: values}
}

func TestTeamProcessor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	countries := newFakeCountryStore()
	require.NoError(t, countries.Upsert(ctx, &domain.Country{Code: "ENG", Name: "England"}))

	p := NewTeamProcessor(NewCountryLookup(countries), discardLogger())

	t.Run("valid record resolves country", func(t *testing.T) {
		out, err := p.Process(ctx, teamRec("Arsenal", "CLUB", "Emirates", "1886", "Gunners", "60704", "ENG"))
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, "Arsenal", out.Name)
		assert.Equal(t, domain.TeamTypeClub, out.TeamType)
		assert.Equal(t, 1886, out.EstablishedYear)
		assert.Equal(t, 60704, out.StadiumCapacity)
		assert.Equal(t, int64(1), out.CountryID)
		assert.Equal(t, "TEAM_LOAD_JOB", out.UpdatedBy)
	})

	t.Run("country code is case folded", func(t *testing.T) {
		out, err := p.Process(ctx, teamRec("Chelsea", "CLUB", "Stamford Bridge", "1905", "Blues", "40341", "eng"))
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, int64(1), out.CountryID)
	})

	t.Run("blank mandatory fields are validation errors", func(t *testing.T) {
		cases := map[string]batch.RawRecord{
			"name":        teamRec("", "CLUB", "S", "1900", "N", "100", "ENG"),
			"teamType":    teamRec("Arsenal", "  ", "S", "1900", "N", "100", "ENG"),
			"countryCode": teamRec("Arsenal", "CLUB", "S", "1900", "N", "100", ""),
		}
		for field, rec := range cases {
			out, err := p.Process(ctx, rec)
			assert.Nil(t, out, field)
			assert.ErrorIs(t, err, domain.ErrValidation, field)
		}
	})

	t.Run("unparseable year filters silently", func(t *testing.T) {
		out, err := p.Process(ctx, teamRec("Arsenal", "CLUB", "S", "eighteen86", "N", "100", "ENG"))
		assert.Nil(t, out)
		assert.NoError(t, err)
	})

	t.Run("unparseable capacity filters silently", func(t *testing.T) {
		out, err := p.Process(ctx, teamRec("Arsenal", "CLUB", "S", "1886", "N", "many", "ENG"))
		assert.Nil(t, out)
		assert.NoError(t, err)
	})

	t.Run("unknown country filters silently", func(t *testing.T) {
		out, err := p.Process(ctx, teamRec("Ajax", "CLUB", "S", "1900", "N", "100", "NED"))
		assert.Nil(t, out)
		assert.NoError(t, err)
	})

	t.Run("lookup failure aborts", func(t *testing.T) {
		boom := errors.New("connection refused")
		failing := NewTeamProcessor(NewCountryLookup(failingResolver{err: boom}), discardLogger())

		out, err := failing.Process(ctx, teamRec("Arsenal", "CLUB", "S", "1886", "N", "100", "ENG"))
		assert.Nil(t, out)
		require.Error(t, err)
		assert.False(t, batch.DefaultSkippable(err))
	})
}

func TestTeamStep_MixedFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	countries := newFakeCountryStore()
	require.NoError(t, countries.Upsert(ctx, &domain.Country{Code: "ENG", Name: "England"}))
	teams := newFakeTeamStore()

	path := writeTempFile(t,
		"name,teamType,stadiumName,establishedYear,nickname,stadiumCapacity,countryCode\n"+
			"Arsenal,CLUB,Emirates,1886,Gunners,60704,ENG\n"+
			",CLUB,Anfield,1892,Reds,61276,ENG\n"+ // blank name: skip
			"Everton,CLUB,Goodison,year,Toffees,39414,ENG\n"+ // bad year: filter
			"Ajax,CLUB,Arena,1900,Godenzonen,55865,NED\n"+ // unknown country: filter
			"Chelsea,CLUB,Stamford Bridge,1905,Blues,40341,ENG\n")

	step := NewTeamStep(discardLogger(), path, teams, NewCountryLookup(countries), fakeTx{}, batch.StepConfig{
		ChunkSize: 10,
		SkipLimit: 10,
	})

	res, err := step.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, batch.StatusCompleted, res.Status)
	assert.Equal(t, 5, res.ReadCount)
	assert.Equal(t, 2, res.WriteCount)
	assert.Equal(t, 2, res.FilterCount)
	assert.Equal(t, 1, res.SkipCount)

	assert.Len(t, teams.byName, 2)
	assert.Contains(t, teams.byName, "Arsenal")
	assert.Contains(t, teams.byName, "Chelsea")
}

func TestTeamStep_RefreshOverwritesExistingRow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	countries := newFakeCountryStore()
	require.NoError(t, countries.Upsert(ctx, &domain.Country{Code: "ENG", Name: "England"}))
	teams := newFakeTeamStore()

	first := writeTempFile(t,
		"name,teamType,stadiumName,establishedYear,nickname,stadiumCapacity,countryCode\n"+
			"Arsenal,CLUB,Highbury,1886,Gunners,38419,ENG\n")
	step := NewTeamStep(discardLogger(), first, teams, NewCountryLookup(countries), fakeTx{}, batch.StepConfig{})
	_, err := step.Execute(ctx)
	require.NoError(t, err)

	refreshed := writeTempFile(t,
		"name,teamType,stadiumName,establishedYear,nickname,stadiumCapacity,countryCode\n"+
			"Arsenal,CLUB,Emirates,1886,Gunners,60704,ENG\n")
	step = NewTeamStep(discardLogger(), refreshed, teams, NewCountryLookup(countries), fakeTx{}, batch.StepConfig{})
	_, err = step.Execute(ctx)
	require.NoError(t, err)

	require.Len(t, teams.byName, 1)
	got := teams.byName["Arsenal"]
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Emirates", got.StadiumName)
	assert.Equal(t, 60704, got.StadiumCapacity)
}
