package service

import (
	"context"
	"time"

	"ilas-backend/internal/domain"
	"ilas-backend/internal/repository"
)

type reportService struct {
	books repository.BookRepository
	txns  repository.TransactionRepository
}

func NewReportService(books repository.BookRepository, txns repository.TransactionRepository) ReportService {
	return &reportService{books: books, txns: txns}
}

func (s *reportService) Summary(ctx context.Context) (*domain.LibrarySummary, error) {
	counts, err := s.books.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	active := true
	_, activeCount, err := s.txns.List(ctx, repository.TransactionQuery{Active: &active, Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}

	overdue, err := s.txns.ListOverdueActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	fines, err := s.txns.SumFines(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.LibrarySummary{
		BooksByStatus:       counts,
		ActiveLoans:         activeCount,
		OverdueLoans:        int64(len(overdue)),
		FinesCollectedCents: fines,
	}, nil
}
