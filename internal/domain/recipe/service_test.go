package recipe

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/apperror"
	"prepstock/internal/core/entity"
	"prepstock/internal/core/id"
	"prepstock/internal/core/types"
	"prepstock/internal/domain"
	"prepstock/internal/domain/costing"
	"prepstock/internal/domain/ingredient"
	"prepstock/internal/domain/reconcile"
)

// --- In-memory fakes ---

type fakeRecipeRepo struct {
	recipes map[id.ID]*Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[id.ID]*Recipe{}}
}

func (r *fakeRecipeRepo) Create(ctx context.Context, rec *Recipe) error {
	r.recipes[rec.ID] = rec
	return nil
}

func (r *fakeRecipeRepo) GetByID(ctx context.Context, recipeID id.ID) (*Recipe, error) {
	rec, ok := r.recipes[recipeID]
	if !ok {
		return nil, apperror.NewNotFound("recipe", recipeID.String())
	}
	copied := *rec
	return &copied, nil
}

func (r *fakeRecipeRepo) Update(ctx context.Context, rec *Recipe) error {
	if _, ok := r.recipes[rec.ID]; !ok {
		return apperror.NewNotFound("recipe", rec.ID.String())
	}
	r.recipes[rec.ID] = rec
	return nil
}

func (r *fakeRecipeRepo) Delete(ctx context.Context, recipeID id.ID) error {
	if _, ok := r.recipes[recipeID]; !ok {
		return apperror.NewNotFound("recipe", recipeID.String())
	}
	delete(r.recipes, recipeID)
	return nil
}

func (r *fakeRecipeRepo) List(ctx context.Context, ownerID id.ID, filter domain.ListFilter) (domain.ListResult[*Recipe], error) {
	var items []*Recipe
	for _, rec := range r.recipes {
		if rec.OwnerID == ownerID {
			items = append(items, rec)
		}
	}
	return domain.ListResult[*Recipe]{Items: items, TotalCount: int64(len(items))}, nil
}

// fakeStore is both the catalog source and the stock writer, so committed
// deductions show up in later snapshots.
type fakeStore struct {
	ingredients map[id.ID]*ingredient.Ingredient
	failOn      id.ID
	failErr     error
}

func newFakeStore(items ...*ingredient.Ingredient) *fakeStore {
	s := &fakeStore{ingredients: map[id.ID]*ingredient.Ingredient{}}
	for _, ing := range items {
		s.ingredients[ing.ID] = ing
	}
	return s
}

func (s *fakeStore) Snapshot(ctx context.Context, ownerID id.ID) (ingredient.Catalog, error) {
	catalog := make(ingredient.Catalog, len(s.ingredients))
	for ingID, ing := range s.ingredients {
		copied := *ing
		catalog[ingID] = &copied
	}
	return catalog, nil
}

func (s *fakeStore) UpdateStock(ctx context.Context, ingredientID id.ID, stock types.Quantity) error {
	if s.failErr != nil && ingredientID == s.failOn {
		return s.failErr
	}
	ing, ok := s.ingredients[ingredientID]
	if !ok {
		return apperror.NewNotFound("ingredient", ingredientID.String())
	}
	ing.Stock = stock
	return nil
}

func (s *fakeStore) stock(ingredientID id.ID) types.Quantity {
	return s.ingredients[ingredientID].Stock
}

type fakeCostCache struct {
	items map[id.ID]costing.Breakdown
}

func newFakeCostCache() *fakeCostCache {
	return &fakeCostCache{items: map[id.ID]costing.Breakdown{}}
}

func (c *fakeCostCache) Get(recipeID id.ID) (costing.Breakdown, bool) {
	b, ok := c.items[recipeID]
	return b, ok
}

func (c *fakeCostCache) Set(recipeID id.ID, b costing.Breakdown) {
	c.items[recipeID] = b
}

func (c *fakeCostCache) Flush() {
	c.items = map[id.ID]costing.Breakdown{}
}

// --- Helpers ---

func testIngredient(ownerID id.ID, name string, unit ingredient.Unit, packQuantity, stock string) *ingredient.Ingredient {
	return &ingredient.Ingredient{
		BaseEntity:   entity.NewBaseEntity(ownerID),
		Name:         name,
		Unit:         unit,
		PackQuantity: types.Must(packQuantity),
		PackCost:     types.Must("10"),
		Stock:        types.Must(stock),
	}
}

func testRecipe(ownerID id.ID, usage costing.UsageMap) *Recipe {
	r := New(ownerID, "pancakes", 4)
	r.TargetMargin = types.Must("50")
	r.Ingredients = usage
	return r
}

func setup(items ...*ingredient.Ingredient) (*Service, *fakeRecipeRepo, *fakeStore) {
	repo := newFakeRecipeRepo()
	store := newFakeStore(items...)
	svc := NewService(repo, store, reconcile.NewCommitter(store), nil)
	return svc, repo, store
}

// --- Tests ---

func TestCreate_DeductsStock(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "2")
	egg := testIngredient(owner, "egg", ingredient.UnitPiece, "0", "10")
	svc, repo, store := setup(flour, egg)

	r := testRecipe(owner, costing.UsageMap{
		flour.ID: types.Must("500"),
		egg.ID:   types.Must("3"),
	})

	result, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	require.True(t, result.Stock.OK())
	require.NotNil(t, result.Recipe)

	assert.Contains(t, repo.recipes, r.ID)
	assert.True(t, store.stock(flour.ID).Equal(types.Must("1.5")), "flour stock %s", store.stock(flour.ID))
	assert.True(t, store.stock(egg.ID).Equal(types.Must("7")), "egg stock %s", store.stock(egg.ID))
}

func TestCreate_ShortageBlocksPersistence(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "0.01")
	svc, repo, store := setup(flour)

	r := testRecipe(owner, costing.UsageMap{flour.ID: types.Must("30")})

	result, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	assert.False(t, result.Stock.OK())
	assert.Nil(t, result.Recipe)

	require.Len(t, result.Stock.Insufficient, 1)
	assert.True(t, result.Stock.Insufficient[0].Available.Equal(types.Must("10")))

	assert.Empty(t, repo.recipes)
	assert.True(t, store.stock(flour.ID).Equal(types.Must("0.01")))
}

func TestCreate_UnknownIngredientSkipped(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "2")
	svc, repo, _ := setup(flour)

	ghost := id.New()
	r := testRecipe(owner, costing.UsageMap{
		flour.ID: types.Must("500"),
		ghost:    types.Must("99"),
	})

	result, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, result.Stock.OK())
	assert.Equal(t, []id.ID{ghost}, result.Stock.Missing)
	assert.Contains(t, repo.recipes, r.ID)
}

func TestUpdate_NetsStockAdjustments(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "2")
	sugar := testIngredient(owner, "sugar", ingredient.UnitGram, "500", "1")
	svc, _, store := setup(flour, sugar)

	r := testRecipe(owner, costing.UsageMap{flour.ID: types.Must("500")})
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	require.True(t, store.stock(flour.ID).Equal(types.Must("1.5")))

	// Double the flour, add sugar
	updated := testRecipe(owner, costing.UsageMap{
		flour.ID: types.Must("1000"),
		sugar.ID: types.Must("250"),
	})
	updated.ID = r.ID

	result, err := svc.Update(context.Background(), owner, updated)
	require.NoError(t, err)
	require.True(t, result.Stock.OK())

	assert.True(t, store.stock(flour.ID).Equal(types.Must("1")), "flour stock %s", store.stock(flour.ID))
	assert.True(t, store.stock(sugar.ID).Equal(types.Must("0.5")), "sugar stock %s", store.stock(sugar.ID))
}

func TestUpdate_UnchangedQuantitiesAlwaysValidate(t *testing.T) {
	owner := id.New()
	// Exactly enough stock for one batch
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "1")
	svc, _, store := setup(flour)

	usage := costing.UsageMap{flour.ID: types.Must("1000")}
	r := testRecipe(owner, usage)
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	require.True(t, store.stock(flour.ID).IsZero())

	// Same quantities, only the name changes
	renamed := testRecipe(owner, usage)
	renamed.ID = r.ID
	renamed.Name = "crepes"

	result, err := svc.Update(context.Background(), owner, renamed)
	require.NoError(t, err)
	assert.True(t, result.Stock.OK())
	assert.True(t, store.stock(flour.ID).IsZero())
}

func TestDelete_DoesNotRestoreStock(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "2")
	svc, repo, store := setup(flour)

	r := testRecipe(owner, costing.UsageMap{flour.ID: types.Must("1000")})
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	require.True(t, store.stock(flour.ID).Equal(types.Must("1")))

	require.NoError(t, svc.Delete(context.Background(), owner, r.ID))

	assert.Empty(t, repo.recipes)
	assert.True(t, store.stock(flour.ID).Equal(types.Must("1")), "stock must stay deducted")
}

func TestCreate_PartialCommitSurfaced(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "2")
	egg := testIngredient(owner, "egg", ingredient.UnitPiece, "0", "10")
	svc, repo, store := setup(flour, egg)

	// Deltas apply in ingredient id order; fail the one that sorts last so
	// the first write is already applied when the failure hits.
	ids := []id.ID{flour.ID, egg.ID}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	store.failOn = ids[1]
	store.failErr = errors.New("connection lost")

	r := testRecipe(owner, costing.UsageMap{
		flour.ID: types.Must("500"),
		egg.ID:   types.Must("3"),
	})

	result, err := svc.Create(context.Background(), r)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeStockNotCommitted, appErr.Code)

	// Document persisted, first deduction kept, failed one untouched.
	assert.Contains(t, repo.recipes, r.ID)
	assert.NotNil(t, result.Recipe)

	applied, failed := ids[0], ids[1]
	assert.False(t, store.stock(applied).Equal(initialStock(flour, egg, applied)),
		"first delta should be applied")
	assert.True(t, store.stock(failed).Equal(initialStock(flour, egg, failed)),
		"failed delta must leave stock untouched")
}

func initialStock(flour, egg *ingredient.Ingredient, ingredientID id.ID) types.Quantity {
	if ingredientID == flour.ID {
		return types.Must("2")
	}
	return types.Must("10")
}

func TestValidateStock_EditPreviewNetsPreviousRecipe(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "1")
	svc, _, store := setup(flour)

	usage := costing.UsageMap{flour.ID: types.Must("1000")}
	r := testRecipe(owner, usage)
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	require.True(t, store.stock(flour.ID).IsZero())

	// Without netting the previous recipe the same usage fails.
	result, err := svc.ValidateStock(context.Background(), owner, usage, nil)
	require.NoError(t, err)
	assert.False(t, result.OK())

	// With netting it passes.
	result, err = svc.ValidateStock(context.Background(), owner, usage, &r.ID)
	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestCost_ComputesBreakdown(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "5")
	svc, _, _ := setup(flour)

	r := testRecipe(owner, costing.UsageMap{flour.ID: types.Must("500")})
	r.Servings = 2
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)

	b, err := svc.Cost(context.Background(), owner, r.ID)
	require.NoError(t, err)

	// 0.5 packs at 10 per pack
	assert.True(t, b.TotalCost.Equal(types.Must("5")), "total %s", b.TotalCost)
	assert.True(t, b.CostPerServing.Equal(types.Must("2.5")))
	// 50% margin
	assert.True(t, b.PricePerServing.Equal(types.Must("3.75")))
}

func TestCost_CacheNeverAnswersForForeignOwner(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "5")
	repo := newFakeRecipeRepo()
	store := newFakeStore(flour)
	costs := newFakeCostCache()
	svc := NewService(repo, store, reconcile.NewCommitter(store), costs)

	r := testRecipe(owner, costing.UsageMap{flour.ID: types.Must("500")})
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)

	// Owner warms the cache.
	b, err := svc.Cost(context.Background(), owner, r.ID)
	require.NoError(t, err)
	require.True(t, b.TotalCost.Equal(types.Must("5")))
	_, cached := costs.Get(r.ID)
	require.True(t, cached)

	// A different user asking for the same recipe id gets not-found,
	// warm cache or not.
	stranger := id.New()
	_, err = svc.Cost(context.Background(), stranger, r.ID)
	assert.True(t, apperror.IsNotFound(err))

	// The owner still reads the memoized breakdown.
	b, err = svc.Cost(context.Background(), owner, r.ID)
	require.NoError(t, err)
	assert.True(t, b.TotalCost.Equal(types.Must("5")))
}

func TestGet_OwnerScoped(t *testing.T) {
	owner := id.New()
	flour := testIngredient(owner, "flour", ingredient.UnitGram, "1000", "2")
	svc, _, _ := setup(flour)

	r := testRecipe(owner, costing.UsageMap{flour.ID: types.Must("500")})
	_, err := svc.Create(context.Background(), r)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), id.New(), r.ID)
	assert.True(t, apperror.IsNotFound(err))
}
