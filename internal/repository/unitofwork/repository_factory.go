package unitofwork

import "context"

// RepositoryFactory hands out units of work so ingestion can replace a
// document's chunks and embeddings in one transaction.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
