package aws

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
	"github.com/diillson/cdk-bootstrap-go/internal/domain/repository"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
)

// AWSRepositoryImpl implementa o AWSRepository com cache de clientes.
type AWSRepositoryImpl struct {
	cfgCache    map[string]aws.Config
	clientCache map[string]interface{}
	mu          sync.Mutex
}

// NewAWSRepository cria uma nova implementação do AWSRepository.
func NewAWSRepository() repository.AWSRepository {
	return &AWSRepositoryImpl{
		cfgCache:    make(map[string]aws.Config),
		clientCache: make(map[string]interface{}),
	}
}

func (r *AWSRepositoryImpl) getAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg, ok := r.cfgCache[profile]; ok {
		return cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", profile, err)
	}

	r.cfgCache[profile] = cfg
	return cfg, nil
}

func (r *AWSRepositoryImpl) getServiceClient(ctx context.Context, profile, region, service string) (interface{}, error) {
	cacheKey := fmt.Sprintf("%s-%s-%s", profile, region, service)

	r.mu.Lock()
	if client, ok := r.clientCache[cacheKey]; ok {
		r.mu.Unlock()
		return client, nil
	}
	r.mu.Unlock()

	cfg, err := r.getAWSConfig(ctx, profile)
	if err != nil {
		return nil, err
	}

	regionalCfg := cfg.Copy()
	if region != "" {
		regionalCfg.Region = region
	}

	var client interface{}
	switch service {
	case "sts":
		client = sts.NewFromConfig(regionalCfg)
	case "ec2":
		client = ec2.NewFromConfig(regionalCfg)
	case "s3":
		client = s3.NewFromConfig(regionalCfg)
	default:
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	r.mu.Lock()
	r.clientCache[cacheKey] = client
	r.mu.Unlock()

	return client, nil
}

// GetCallerIdentity resolve a identidade via STS, sem passar pelo AWS CLI.
func (r *AWSRepositoryImpl) GetCallerIdentity(ctx context.Context, profile string) (entity.Identity, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "sts")
	if err != nil {
		return entity.Identity{}, err
	}
	stsClient := client.(*sts.Client)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return entity.Identity{}, fmt.Errorf("error getting caller identity for profile %q: %w", profile, err)
	}
	if aws.ToString(result.Account) == "" {
		return entity.Identity{}, fmt.Errorf("%w: empty account id", types.ErrInvalidIdentity)
	}

	return entity.Identity{
		Account: aws.ToString(result.Account),
		Arn:     aws.ToString(result.Arn),
		UserID:  aws.ToString(result.UserId),
	}, nil
}

// GetAccessibleRegions lists the regions enabled for the account behind profile.
func (r *AWSRepositoryImpl) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	client, err := r.getServiceClient(ctx, profile, "us-east-1", "ec2")
	if err != nil {
		return nil, fmt.Errorf("could not create EC2 client to list regions: %w", err)
	}
	ec2Client := client.(*ec2.Client)

	regionsOutput, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{AllRegions: aws.Bool(false)})
	if err != nil {
		return nil, fmt.Errorf("error describing regions for profile %q: %w", profile, err)
	}

	regions := make([]string, 0, len(regionsOutput.Regions))
	for _, region := range regionsOutput.Regions {
		regions = append(regions, aws.ToString(region.RegionName))
	}
	sort.Strings(regions)
	return regions, nil
}

// BootstrapBucketExists checks the staging bucket created by `cdk bootstrap`.
func (r *AWSRepositoryImpl) BootstrapBucketExists(ctx context.Context, env entity.Environment, qualifier string) (bool, error) {
	client, err := r.getServiceClient(ctx, env.Profile, env.Region, "s3")
	if err != nil {
		return false, err
	}
	s3Client := client.(*s3.Client)

	bucket := BootstrapBucketName(qualifier, env)
	_, err = s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return true, nil
	}

	var notFound *s3Types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	return false, fmt.Errorf("error checking bucket %s: %w", bucket, err)
}

// BootstrapBucketName returns cdk-<qualifier>-assets-<account>-<region>.
func BootstrapBucketName(qualifier string, env entity.Environment) string {
	if qualifier == "" {
		qualifier = types.DefaultQualifier
	}
	return fmt.Sprintf("cdk-%s-assets-%s-%s", qualifier, env.Account, env.Region)
}
