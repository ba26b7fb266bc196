package consoleController

import (
	"context"
	"strings"

	"collectgames/internal/database"
	domainerrors "collectgames/internal/errors"
	. "collectgames/internal/models"
	"collectgames/internal/repositories"
	"collectgames/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ConsoleController struct {
	consoleRepo repositories.ConsoleRepository
	validator   *validation.Validator
	db          *gorm.DB
	log         logger.Logger
}

type ConsoleControllerInterface interface {
	GetConsoles(ctx context.Context) ([]*Console, error)
	GetConsole(ctx context.Context, id int) (*Console, error)
	CreateConsole(ctx context.Context, console *Console) (*Console, error)
	UpdateConsole(ctx context.Context, id int, console *Console) error
	DeleteConsole(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	validator *validation.Validator,
	db database.DB,
) ConsoleControllerInterface {
	return &ConsoleController{
		consoleRepo: repos.Console,
		validator:   validator,
		db:          db.SQL,
		log:         logger.New("consoleController"),
	}
}

func (c *ConsoleController) GetConsoles(ctx context.Context) ([]*Console, error) {
	log := c.log.TraceFromContext(ctx).Function("GetConsoles")

	consoles, err := c.consoleRepo.GetAll(ctx, c.db)
	if err != nil {
		return nil, log.Err("failed to get consoles", err)
	}
	if consoles == nil {
		consoles = []*Console{}
	}

	return consoles, nil
}

func (c *ConsoleController) GetConsole(ctx context.Context, id int) (*Console, error) {
	log := c.log.TraceFromContext(ctx).Function("GetConsole")

	console, err := c.consoleRepo.GetByID(ctx, c.db, id)
	if err != nil {
		return nil, log.Err("failed to get console", err, "consoleID", id)
	}

	return console, nil
}

func (c *ConsoleController) CreateConsole(ctx context.Context, console *Console) (*Console, error) {
	log := c.log.TraceFromContext(ctx).Function("CreateConsole")

	console.ID = 0
	console.Name = strings.TrimSpace(console.Name)
	if console.Type == "" {
		console.Type = ConsoleTypeHome
	}
	if err := c.validator.Validate(console); err != nil {
		return nil, log.Err("invalid console", err)
	}

	if err := c.consoleRepo.Create(ctx, c.db, console); err != nil {
		return nil, log.Err("failed to create console", err, "name", console.Name)
	}

	log.Info("Console created", "consoleID", console.ID, "name", console.Name)

	return console, nil
}

// UpdateConsole replaces every editable field of the console.
func (c *ConsoleController) UpdateConsole(ctx context.Context, id int, console *Console) error {
	log := c.log.TraceFromContext(ctx).Function("UpdateConsole")

	if console.ID != 0 && console.ID != id {
		return log.Err(
			"console id mismatch",
			domainerrors.Validationf("console id %d does not match path id %d", console.ID, id),
		)
	}

	console.ID = id
	console.Name = strings.TrimSpace(console.Name)
	if console.Type == "" {
		console.Type = ConsoleTypeHome
	}
	if err := c.validator.Validate(console); err != nil {
		return log.Err("invalid console", err, "consoleID", id)
	}

	if err := c.consoleRepo.Update(ctx, c.db, console); err != nil {
		return log.Err("failed to update console", err, "consoleID", id)
	}

	log.Info("Console updated", "consoleID", id)

	return nil
}

func (c *ConsoleController) DeleteConsole(ctx context.Context, id int) error {
	log := c.log.TraceFromContext(ctx).Function("DeleteConsole")

	if err := c.consoleRepo.Delete(ctx, c.db, id); err != nil {
		return log.Err("failed to delete console", err, "consoleID", id)
	}

	log.Info("Console deleted", "consoleID", id)

	return nil
}
