package listings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petstypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	listingactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/listings"
)

func newImportEnv(t *testing.T) (*testsuite.TestWorkflowEnvironment, *petmemory.Repository) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	repo := petmemory.NewRepository()
	petmemory.SeedCatalog(repo)
	repo.AddOwner(domain.Owner{ID: 1, FirstName: "Ana", State: "SP", City: "Campinas"})
	svc := petsapp.NewService(repo,
		petsapp.WithIdempotencyStore(petmemory.NewIdempotencyStore()),
		petsapp.WithClock(func() time.Time { return time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC) }),
	)
	acts := listingactivities.NewActivities(svc)
	env.RegisterActivityWithOptions(acts.CreateListing, activity.RegisterOptions{Name: listingactivities.CreateListingActivityName})
	return env, repo
}

func listing(breed int64) petstypes.CreateListingInput {
	return petstypes.CreateListingInput{
		OwnerID:     1,
		Name:        "Rex",
		Gender:      "Male",
		Size:        "Medium",
		AgeInMonths: 6,
		SpeciesID:   1,
		BreedID:     breed,
		TagIDs:      []int64{1},
	}
}

func TestImportWorkflow_CollectsFailures(t *testing.T) {
	env, repo := newImportEnv(t)
	env.ExecuteWorkflow(ImportWorkflow, petstypes.ImportListingsInput{
		BatchID:  "b1",
		Listings: []petstypes.CreateListingInput{listing(1), listing(5), listing(3)},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result petstypes.ImportResult
	require.NoError(t, env.GetWorkflowResult(&result))

	require.Equal(t, "b1", result.BatchID)
	require.Equal(t, []int64{1, 2}, result.Imported)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 1, result.Failed[0].Index)
	require.Contains(t, result.Failed[0].Reason, "breed")

	pet, err := repo.GetByID(t.Context(), 2)
	require.NoError(t, err)
	require.Equal(t, "Beagle", pet.Breed.Name)
}

func TestImportWorkflow_EmptyBatch(t *testing.T) {
	env, _ := newImportEnv(t)
	env.ExecuteWorkflow(ImportWorkflow, petstypes.ImportListingsInput{BatchID: "empty"})

	require.True(t, env.IsWorkflowCompleted())
	var result petstypes.ImportResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Empty(t, result.Imported)
	require.Empty(t, result.Failed)
}
