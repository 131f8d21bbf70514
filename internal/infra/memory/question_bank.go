package memory

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"geoquiz-service/internal/domain"
)

//go:embed sample_bank.yaml
var sampleBank []byte

type questionBank struct {
	Questions []domain.Question `yaml:"questions"`
}

// LoadQuestionBank reads a YAML question bank from path.
func LoadQuestionBank(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseQuestionBank(data)
}

// SampleQuestions returns the built-in demo bank.
func SampleQuestions() []domain.Question {
	questions, err := ParseQuestionBank(sampleBank)
	if err != nil {
		panic(fmt.Sprintf("embedded sample bank: %v", err))
	}
	return questions
}

// ParseQuestionBank decodes and validates a YAML question bank.
func ParseQuestionBank(data []byte) ([]domain.Question, error) {
	var bank questionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	questions := make([]domain.Question, 0, len(bank.Questions))
	for i, q := range bank.Questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		questions = append(questions, q.WithDefaults())
	}
	return questions, nil
}
