//go:build integration

package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/postgres"
	"github.com/phrazzld/taskr-api/internal/service"
	"github.com/phrazzld/taskr-api/internal/service/auth"
	"github.com/phrazzld/taskr-api/internal/testdb"
)

func TestUserServiceIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	users := postgres.NewPostgresUserStore(db, quietLogger())
	svc := service.NewUserService(users, auth.NewBcryptHasher(4), nil, db, quietLogger())

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM users WHERE email = $1`, email) })

	user, err := svc.Register(ctx, email, "Integration", "correct-horse-battery")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = svc.Register(ctx, email, "Again", "correct-horse-battery")
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = $1`, email).Scan(&count))
	assert.Equal(t, 1, count, "a duplicate registration never creates a second row")
}

func TestConcurrentPartialUpdatesIntegration(t *testing.T) {
	db := testdb.GetTestDBWithT(t)
	ctx := context.Background()

	tasks := postgres.NewPostgresTaskStore(db, quietLogger())
	svc, err := service.NewTaskService(service.TaskServiceConfig{Tasks: tasks, DB: db, Logger: quietLogger()})
	require.NoError(t, err)

	created, err := svc.Create(ctx, actor, domain.TaskInput{Title: strPtr("concurrent")})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM tasks WHERE id = $1`, created.ID) })

	inputs := []domain.TaskInput{
		{Status: strPtr("completed")},
		{Description: strPtr("edited")},
		{DueDate: strPtr("2031-01-01")},
	}

	var wg sync.WaitGroup
	for _, input := range inputs {
		wg.Add(1)
		go func(input domain.TaskInput) {
			defer wg.Done()
			_, err := svc.Update(ctx, actor, created.ID, input)
			assert.NoError(t, err)
		}(input)
	}
	wg.Wait()

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "concurrent", got.Title)
	assert.Equal(t, domain.TaskStatusCompleted, got.Status)
	assert.Equal(t, "edited", got.Description)
	assert.True(t, got.DueDate.Equal(time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)),
		"row locks keep concurrent partial updates from overwriting each other")
}
