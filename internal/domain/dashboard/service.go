// Package dashboard composes cross-collection aggregates into the summary
// served at /api/dashboard. Chart queries degrade to fixed fallback datasets
// when their underlying aggregation fails, so a broken store darkens a chart
// rather than the whole dashboard; each series is tagged with its source so
// callers can tell the two apart.
package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/covadmin/covadmin/internal/domain/medservice"
)

// Chart series sources.
const (
	SourceComputed = "computed"
	SourceFallback = "fallback"
)

// ChartSeries is one chart dataset with provenance.
type ChartSeries struct {
	Source string `json:"source"`
	Data   []int  `json:"data"`
}

// Static datasets served when an aggregation fails.
var (
	fallbackServiceUsage         = []int{65, 78, 85, 92, 88, 95, 102, 88, 96, 78, 85, 92}
	fallbackCoverageDistribution = []int{65, 25, 10}
)

// Summary is the dashboard response body.
type Summary struct {
	TotalEmployees     int64     `json:"totalEmployees"`
	TotalBeneficiaries int64     `json:"totalBeneficiaries"`
	TotalServices      int64     `json:"totalServices"`
	TotalBilling       float64   `json:"totalBilling"`
	ChartData          ChartData `json:"chartData"`
}

type ChartData struct {
	ServiceUsage         ChartSeries `json:"serviceUsage"`
	CoverageDistribution ChartSeries `json:"coverageDistribution"`
}

type EmployeeStats interface {
	Count(ctx context.Context) (int64, error)
	CoverageCounts(ctx context.Context) (map[string]int, error)
}

type BeneficiaryStats interface {
	Count(ctx context.Context) (int64, error)
}

type ServiceStats interface {
	Count(ctx context.Context) (int64, error)
	MonthlyCounts(ctx context.Context) ([]medservice.MonthlyCount, error)
}

type BillingStats interface {
	TotalAmount(ctx context.Context) (float64, error)
}

type Service struct {
	employees     EmployeeStats
	beneficiaries BeneficiaryStats
	services      ServiceStats
	billing       BillingStats
	log           zerolog.Logger
}

func NewService(emp EmployeeStats, ben BeneficiaryStats, srv ServiceStats, bill BillingStats, log zerolog.Logger) *Service {
	return &Service{employees: emp, beneficiaries: ben, services: srv, billing: bill, log: log}
}

// Summary assembles the dashboard. The entity counts and billing total
// propagate errors; the two chart series never do.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	totalEmployees, err := s.employees.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBeneficiaries, err := s.beneficiaries.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalServices, err := s.services.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBilling, err := s.billing.TotalAmount(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalEmployees:     totalEmployees,
		TotalBeneficiaries: totalBeneficiaries,
		TotalServices:      totalServices,
		TotalBilling:       totalBilling,
		ChartData: ChartData{
			ServiceUsage:         s.serviceUsage(ctx),
			CoverageDistribution: s.coverageDistribution(ctx),
		},
	}, nil
}

// serviceUsage maps monthly service volume onto a 12-slot array indexed by
// calendar month, missing months filled with zero.
func (s *Service) serviceUsage(ctx context.Context) ChartSeries {
	buckets, err := s.services.MonthlyCounts(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("service usage aggregation failed, serving fallback dataset")
		return ChartSeries{Source: SourceFallback, Data: fallbackServiceUsage}
	}

	data := make([]int, 12)
	for _, b := range buckets {
		if b.Month >= 1 && b.Month <= 12 {
			data[b.Month-1] = b.Count
		}
	}
	return ChartSeries{Source: SourceComputed, Data: data}
}

// coverageDistribution is a 3-slot array ordered Basic, Premium, Family.
// Plans outside those three are not counted.
func (s *Service) coverageDistribution(ctx context.Context) ChartSeries {
	counts, err := s.employees.CoverageCounts(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("coverage distribution aggregation failed, serving fallback dataset")
		return ChartSeries{Source: SourceFallback, Data: fallbackCoverageDistribution}
	}

	data := []int{counts["Basic"], counts["Premium"], counts["Family"]}
	return ChartSeries{Source: SourceComputed, Data: data}
}
