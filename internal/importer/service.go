package importer

import (
	"fmt"
	"io"
)

type Service struct {
	planParser Parser
}

func NewService(planParser Parser) *Service {
	return &Service{planParser: planParser}
}

func (s *Service) Import(format Format, r io.Reader) ([]PlanMilestone, error) {
	var parser Parser

	switch format {
	case FormatPlanCSV:
		parser = s.planParser
	default:
		return nil, fmt.Errorf("unknown plan format: %s", format)
	}

	return parser.Parse(r)
}
