package service

import (
	"context"
	"fmt"

	"github.com/avc-dev/shortly/internal/base62"
)

// Allocator выдаёт строго возрастающие уникальные идентификаторы.
type Allocator interface {
	NextID(ctx context.Context) (int64, error)
}

// CodeGenerator генерирует короткие коды из значений аллокатора.
// Значения счётчика всегда кодируются ровно в 7 символов base62,
// поэтому коллизии автоматических кодов исключены без повторных попыток.
type CodeGenerator struct {
	allocator Allocator
}

// NewCodeGenerator создаёт генератор кодов поверх аллокатора.
func NewCodeGenerator(allocator Allocator) *CodeGenerator {
	return &CodeGenerator{allocator: allocator}
}

// Generate выделяет следующий идентификатор и кодирует его в короткий код.
func (g *CodeGenerator) Generate(ctx context.Context) (string, error) {
	id, err := g.allocator.NextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to allocate id: %w", err)
	}

	return base62.Encode(id), nil
}
