package boardController

import (
	"context"
	"time"

	"girasol/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type BoardController struct {
	board *services.BoardService
	log   logger.Logger
}

type BoardControllerInterface interface {
	GetBoard(ctx context.Context, filter []uuid.UUID) ([]services.ApartmentGroup, error)
	GetWeeklyDigest(ctx context.Context, filter []uuid.UUID, now time.Time) (services.WeeklyDigest, error)
}

func New(services services.Service) BoardControllerInterface {
	return &BoardController{
		board: services.Board,
		log:   logger.New("boardController"),
	}
}

func (bc *BoardController) GetBoard(
	ctx context.Context,
	filter []uuid.UUID,
) ([]services.ApartmentGroup, error) {
	return bc.board.GetBoard(ctx, filter)
}

func (bc *BoardController) GetWeeklyDigest(
	ctx context.Context,
	filter []uuid.UUID,
	now time.Time,
) (services.WeeklyDigest, error) {
	return bc.board.GetWeeklyDigest(ctx, filter, now)
}
