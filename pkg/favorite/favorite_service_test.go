package favorite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/internal/test_utils"
)

func TestAddAll_StoresNewFavorites(t *testing.T) {
	// given
	service := NewService(NewStubRepo())
	ctx := test_utils.TestContext()

	// when
	stored, err := service.AddAll(ctx, []Favorite{
		{Type: TypeCard, TargetEntity: 1, Value: "position=0"},
		{Type: TypeCard, TargetEntity: 2, Value: "position=1"},
	})

	// then
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotZero(t, stored[0].Id)

	cards, err := service.GetByType(ctx, TypeCard)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestAddAll_UpdatesExistingFavoriteInPlace(t *testing.T) {
	// given
	service := NewService(NewStubRepo())
	ctx := test_utils.TestContext()
	_, err := service.AddAll(ctx, []Favorite{{Type: TypeCategoryColor, TargetEntity: 3, Value: "#ff0000"}})
	require.NoError(t, err)

	// when
	updated, err := service.AddAll(ctx, []Favorite{{Type: TypeCategoryColor, TargetEntity: 3, Value: "#00ff00"}})

	// then
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "#00ff00", updated[0].Value)

	colors, err := service.GetByType(ctx, TypeCategoryColor)
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, "#00ff00", colors[0].Value)
}

func TestAddAll_RejectsEmptyType(t *testing.T) {
	service := NewService(NewStubRepo())

	_, err := service.AddAll(test_utils.TestContext(), []Favorite{{TargetEntity: 1}})

	assert.ErrorIs(t, err, ErrEmptyType)
}

func TestDeleteAll_MissingFavoritesAreIgnored(t *testing.T) {
	// given
	service := NewService(NewStubRepo())
	ctx := test_utils.TestContext()
	_, err := service.AddAll(ctx, []Favorite{{Type: TypeCard, TargetEntity: 1, Value: "position=0"}})
	require.NoError(t, err)

	// when
	err = service.DeleteAll(ctx, []Favorite{
		{Type: TypeCard, TargetEntity: 1},
		{Type: TypeCard, TargetEntity: 99},
	})

	// then
	require.NoError(t, err)
	cards, err := service.GetByType(ctx, TypeCard)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
