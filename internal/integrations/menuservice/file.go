package menuservice

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m04kA/SMC-CanteenBooking/internal/domain"
)

// FileSource читает снапшот меню из JSON-файла того же формата, что и /menu/daily.
// Файл перечитывается на каждый запрос, правки подхватываются без рестарта.
type FileSource struct {
	path string
}

// NewFileSource создает источник меню из файла
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Snapshot читает и декодирует файл
func (s *FileSource) Snapshot(_ context.Context) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, s.path, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidResponse, s.path, err)
	}
	if snapshot == nil {
		snapshot = Snapshot{}
	}
	return snapshot, nil
}

// GetDayMenu возвращает меню на дату
func (s *FileSource) GetDayMenu(ctx context.Context, date string) (*domain.DayMenu, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.DayMenu(date), nil
}

// AvailableDates возвращает даты, на которые есть меню
func (s *FileSource) AvailableDates(ctx context.Context) ([]string, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Dates(), nil
}
