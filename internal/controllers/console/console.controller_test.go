package consoleController

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainerrors "collectgames/internal/errors"
	"collectgames/internal/models"
	"collectgames/internal/repositories/repotest"
	"collectgames/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController() *ConsoleController {
	return &ConsoleController{
		consoleRepo: repotest.New().Repository().Console,
		validator:   validation.New(),
		log:         logger.New("consoleController"),
	}
}

func TestCreateConsole_DefaultsType(t *testing.T) {
	controller := newTestController()

	console, err := controller.CreateConsole(context.Background(), &models.Console{
		Name:         " Mega Drive ",
		Manufacturer: "Sega",
	})
	require.NoError(t, err)

	assert.NotZero(t, console.ID)
	assert.Equal(t, "Mega Drive", console.Name)
	assert.Equal(t, models.ConsoleTypeHome, console.Type)
}

func TestCreateConsole_Validation(t *testing.T) {
	tests := []struct {
		name    string
		console models.Console
		field   string
	}{
		{name: "missing name", console: models.Console{Manufacturer: "Nintendo"}, field: "name"},
		{name: "name too long", console: models.Console{Name: strings.Repeat("x", 101)}, field: "name"},
		{name: "unknown type", console: models.Console{Name: "Virtual Boy", Type: "Headset"}, field: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := newTestController()

			_, err := controller.CreateConsole(context.Background(), &tt.console)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Contains(t, domainErr.Details, tt.field)
		})
	}
}

func TestGetConsoles_OrderedByName(t *testing.T) {
	controller := newTestController()
	for _, name := range []string{"Saturn", "Game Boy", "PlayStation"} {
		_, err := controller.CreateConsole(context.Background(), &models.Console{Name: name})
		require.NoError(t, err)
	}

	consoles, err := controller.GetConsoles(context.Background())
	require.NoError(t, err)
	require.Len(t, consoles, 3)
	assert.Equal(t, "Game Boy", consoles[0].Name)
	assert.Equal(t, "PlayStation", consoles[1].Name)
	assert.Equal(t, "Saturn", consoles[2].Name)
}

func TestUpdateConsole(t *testing.T) {
	controller := newTestController()
	created, err := controller.CreateConsole(context.Background(), &models.Console{Name: "GBA"})
	require.NoError(t, err)

	err = controller.UpdateConsole(context.Background(), created.ID, &models.Console{
		Name:         "Game Boy Advance",
		Manufacturer: "Nintendo",
		Type:         models.ConsoleTypeHandheld,
	})
	require.NoError(t, err)

	stored, err := controller.GetConsole(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Game Boy Advance", stored.Name)
	assert.Equal(t, models.ConsoleTypeHandheld, stored.Type)
}

func TestUpdateConsole_IDMismatch(t *testing.T) {
	controller := newTestController()
	created, err := controller.CreateConsole(context.Background(), &models.Console{Name: "Switch"})
	require.NoError(t, err)

	body := &models.Console{Name: "Switch", Type: models.ConsoleTypeHybrid}
	body.ID = created.ID + 1

	err = controller.UpdateConsole(context.Background(), created.ID, body)
	assert.Equal(t, domainerrors.CodeValidation, domainerrors.CodeOf(err))
}

func TestUpdateConsole_NotFound(t *testing.T) {
	controller := newTestController()

	err := controller.UpdateConsole(context.Background(), 5, &models.Console{Name: "Jaguar"})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestDeleteConsole(t *testing.T) {
	controller := newTestController()
	created, err := controller.CreateConsole(context.Background(), &models.Console{Name: "3DO"})
	require.NoError(t, err)

	require.NoError(t, controller.DeleteConsole(context.Background(), created.ID))

	_, err = controller.GetConsole(context.Background(), created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	err = controller.DeleteConsole(context.Background(), created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
