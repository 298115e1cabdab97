package input

import (
	"context"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

// ResearchService answers a research query. It never fails: every upstream
// error resolves to the next fallback.
type ResearchService interface {
	Research(ctx context.Context, req entity.QueryRequest) entity.ResearchAnswer
}

type JuniorService interface {
	Ask(ctx context.Context, req entity.QueryRequest) entity.JuniorAnswer
}
