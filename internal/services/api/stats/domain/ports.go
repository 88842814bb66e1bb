package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Steps(ctx context.Context, in StepsInput) ([]StepRow, error)
	Categories(ctx context.Context, in CategoriesInput) ([]CategoryRow, error)
}
