package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	id "medhope/pkg/domain"
)

func (s *Service) startSpan(ctx context.Context, name string, caseID id.CaseID, isZakat bool) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "funding."+name, trace.WithAttributes(
		attribute.String("case.id", caseID.String()),
		attribute.Bool("donation.zakat", isZakat),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
