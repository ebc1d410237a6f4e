package setting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/dbtest"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()

	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := dbtest.New(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "phone",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			key:     "phone",
			seedData: []models.Setting{
				{Key: "phone", Value: "+62 812 0000 0000"},
			},
			expectedValue: "+62 812 0000 0000",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := Get(context.Background(), tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				require.NotNil(t, setting)
				assert.Equal(t, tc.key, setting.Key)
				assert.Equal(t, tc.expectedValue, setting.Value)
			}
		})
	}
}

func TestAll(t *testing.T) {
	db := dbtest.New(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		seedData      []models.Setting
		expectedError error
		expected      map[string]string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			expectedError: ErrDBNil,
		},
		{
			name:     "empty database",
			dbParam:  db,
			expected: map[string]string{},
		},
		{
			name:    "flat map",
			dbParam: db,
			seedData: []models.Setting{
				{Key: "address", Value: "Jl. Sudirman 1, Jakarta"},
				{Key: "email", Value: "info@example.com"},
				{Key: "working_hours", Value: "Mon-Fri 09:00-17:00"},
			},
			expected: map[string]string{
				"address":       "Jl. Sudirman 1, Jakarta",
				"email":         "info@example.com",
				"working_hours": "Mon-Fri 09:00-17:00",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			settings, err := All(context.Background(), tc.dbParam)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, settings)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, settings)
			}
		})
	}
}

func TestSet(t *testing.T) {
	db := dbtest.New(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		value         string
		seedData      []models.Setting
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "phone",
			value:         "value",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			value:         "value",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:    "create new setting",
			dbParam: db,
			key:     "maps_embed",
			value:   "<iframe></iframe>",
		},
		{
			name:    "update existing setting",
			dbParam: db,
			key:     "about_us",
			value:   "Updated",
			seedData: []models.Setting{
				{Key: "about_us", Value: "Original"},
			},
		},
		{
			name:    "empty value is stored",
			dbParam: db,
			key:     "phone",
			value:   "",
			seedData: []models.Setting{
				{Key: "phone", Value: "123"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			err := Set(context.Background(), tc.dbParam, tc.key, tc.value)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)

				return
			}

			require.NoError(t, err)

			var rows []models.Setting
			require.NoError(t, tc.dbParam.Where(keyQueryPattern, tc.key).Find(&rows).Error)
			require.Len(t, rows, 1)
			assert.Equal(t, tc.value, rows[0].Value)
		})
	}
}

func TestSetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	require.NoError(t, Set(ctx, db, "phone", "111"))
	require.NoError(t, Set(ctx, db, "phone", "222"))

	all, err := All(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"phone": "222"}, all)
}

func TestSetMany(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	repo := New(db)

	seedSettings(t, db, []models.Setting{{Key: "phone", Value: "old"}})

	applied, err := repo.SetMany(ctx, map[string]string{
		"phone":   "new",
		"email":   "info@example.com",
		"address": "Jakarta",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"address", "email", "phone"}, applied)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"phone":   "new",
		"email":   "info@example.com",
		"address": "Jakarta",
	}, all)

	applied, err = repo.SetMany(ctx, map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestSetManyReportsPartialFailure(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	applied, err := SetMany(ctx, db, map[string]string{
		"":      "no key",
		"phone": "123",
	})

	var batch *BatchError
	require.ErrorAs(t, err, &batch)
	assert.Equal(t, []string{""}, batch.Failed)
	assert.Equal(t, []string{"phone"}, batch.Applied)
	assert.Equal(t, []string{"phone"}, applied)
	require.ErrorIs(t, err, ErrSettingKeyEmpty)

	all, err := All(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"phone": "123"}, all)

	_, err = SetMany(ctx, nil, map[string]string{"phone": "1"})
	require.ErrorIs(t, err, ErrDBNil)
}

func TestSetManyStoreDown(t *testing.T) {
	applied, err := SetMany(context.Background(), dbtest.Closed(t), map[string]string{"a": "1", "b": "2"})

	var batch *BatchError
	require.True(t, errors.As(err, &batch))
	assert.Equal(t, []string{"a", "b"}, batch.Failed)
	assert.Empty(t, applied)
	assert.Contains(t, batch.Error(), "a, b")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	require.ErrorIs(t, Delete(ctx, nil, "phone"), ErrDBNil)
	require.ErrorIs(t, Delete(ctx, db, ""), ErrSettingKeyEmpty)
	require.ErrorIs(t, Delete(ctx, db, "phone"), ErrSettingNotFound)

	require.NoError(t, Set(ctx, db, "phone", "123"))
	require.NoError(t, Delete(ctx, db, "phone"))

	_, err := Get(ctx, db, "phone")
	require.ErrorIs(t, err, ErrSettingNotFound)
}
