package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	id "medhope/pkg/domain"
)

func (s *Service) startSpan(ctx context.Context, name string, caseID id.CaseID) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{}
	if !caseID.IsNil() {
		attrs = append(attrs, attribute.String("case.id", caseID.String()))
	}
	return s.tracer.Start(ctx, "cases."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
