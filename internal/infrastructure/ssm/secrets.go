package ssm

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/contact-api/internal/config"
	"github.com/contact-api/internal/domain"
	"github.com/contact-api/internal/infrastructure/awscfg"
)

// parameterAPI is the subset of *ssm.Client used by SecretSource.
type parameterAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretSource reads one SecureString parameter and keeps it for the
// lifetime of the process. A failed or empty read is not cached.
type SecretSource struct {
	api  parameterAPI
	name string

	mu    sync.Mutex
	value string
}

func NewClient(awsCfg aws.Config, cfg *config.Config) *ssm.Client {
	return ssm.NewFromConfig(awsCfg, func(o *ssm.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

func NewSecretSource(api parameterAPI, name string) *SecretSource {
	return &SecretSource{api: api, name: name}
}

// Secret returns the cached value, fetching it on first use.
func (s *SecretSource) Secret(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value != "" {
		return s.value, nil
	}
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(s.name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get parameter %s: %w", s.name, err)
	}
	if out.Parameter == nil || aws.ToString(out.Parameter.Value) == "" {
		return "", fmt.Errorf("parameter %s is empty: %w", s.name, domain.ErrNotFound)
	}
	s.value = aws.ToString(out.Parameter.Value)
	return s.value, nil
}
