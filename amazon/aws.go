package amazon

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
)

// NewAWSSession instantiates a connection to AWS. Static credentials from
// configuration take precedence; otherwise the IAM role of the host is used.
func NewAWSSession(conf config.S3Configuration, logger *zap.Logger) *session.Session {
	if len(conf.AccessKeyID) > 0 && len(conf.SecretAccessKey) > 0 {
		logger.Info("aws.credentials", zap.String("provider", "configuration"))
		theCredentials := credentials.NewStaticCredentials(conf.AccessKeyID, conf.SecretAccessKey, "")
		sessionConfig := &aws.Config{
			Credentials: theCredentials,
			Region:      aws.String(conf.Region),
		}
		if len(conf.Endpoint) > 0 {
			sessionConfig.Endpoint = aws.String(conf.Endpoint)
			sessionConfig.S3ForcePathStyle = aws.Bool(true)
		}
		return session.Must(session.NewSession(sessionConfig))
	}
	// Do as IAM
	logger.Info("aws.credentials", zap.String("provider", "iam role"))
	sessionConfig := &aws.Config{
		Region: aws.String(conf.Region),
	}
	if len(conf.Endpoint) > 0 {
		sessionConfig.Endpoint = aws.String(conf.Endpoint)
		sessionConfig.S3ForcePathStyle = aws.Bool(true)
	}
	return session.Must(session.NewSession(sessionConfig))
}
