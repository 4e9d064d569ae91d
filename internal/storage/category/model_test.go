package category

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOperationType_Effect(t *testing.T) {
	amount := decimal.RequireFromString("42.10")

	assert.True(t, OperationTypeIncome.Effect(amount).Equal(amount))
	assert.True(t, OperationTypeExpense.Effect(amount).Equal(amount.Neg()))
}

func TestOperationType_Valid(t *testing.T) {
	assert.True(t, OperationTypeIncome.Valid())
	assert.True(t, OperationTypeExpense.Valid())
	assert.False(t, OperationType(0).Valid())
	assert.False(t, OperationType(3).Valid())
}

func TestParseOperationType(t *testing.T) {
	tests := []struct {
		in      string
		want    OperationType
		wantErr bool
	}{
		{in: "income", want: OperationTypeIncome},
		{in: " Expense ", want: OperationTypeExpense},
		{in: "transfer", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOperationType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) OperationType {
	t.Helper()
	got, err := ParseOperationType(s)
	require.NoError(t, err)
	return got
}

type mockReader struct {
	mock.Mock
}

func (m *mockReader) FindByID(ctx context.Context, id int64) (*Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *mockReader) List(ctx context.Context, filter *Filter) ([]*Category, error) {
	args := m.Called(ctx, filter)
	c, _ := args.Get(0).([]*Category)
	return c, args.Error(1)
}

func TestMemo_LooksUpOnce(t *testing.T) {
	reader := new(mockReader)
	groceries := &Category{ID: 3, UserID: 1, Name: "Groceries", OperationType: OperationTypeExpense}
	reader.On("FindByID", mock.Anything, int64(3)).Return(groceries, nil).Once()

	memo := NewMemo(reader)
	first, err := memo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	second, err := memo.FindByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Same(t, groceries, first)
	assert.Same(t, first, second)
	reader.AssertExpectations(t)
}

func TestMemo_RemembersMissing(t *testing.T) {
	reader := new(mockReader)
	reader.On("FindByID", mock.Anything, int64(8)).Return(nil, nil).Once()

	memo := NewMemo(reader)
	for range 2 {
		c, err := memo.FindByID(context.Background(), 8)
		require.NoError(t, err)
		assert.Nil(t, c)
	}
	reader.AssertExpectations(t)
}
