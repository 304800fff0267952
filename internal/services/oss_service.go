package services

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aliyun/alibaba-cloud-sdk-go/services/sts"
	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

type OSSConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	AccessKeySecret string
	RoleArn         string
}

type STSCredentials struct {
	AccessKeyId     string `json:"accessKeyId"`
	AccessKeySecret string `json:"accessKeySecret"`
	SecurityToken   string `json:"securityToken"`
	Expiration      string `json:"expiration"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
}

// ImageUploader stores reward images and hands out upload credentials.
type ImageUploader interface {
	Upload(name string, body io.Reader) (string, error)
	UploadToken() (*STSCredentials, error)
}

// OSSUploader stores reward images in an Aliyun OSS bucket.
type OSSUploader struct {
	cfg OSSConfig
}

func NewOSSUploader(cfg OSSConfig) *OSSUploader {
	return &OSSUploader{cfg: cfg}
}

func (u *OSSUploader) UploadToken() (*STSCredentials, error) {
	// STS wants the bare region id ("cn-beijing", not "oss-cn-beijing").
	stsRegion := strings.TrimPrefix(u.cfg.Region, "oss-")

	client, err := sts.NewClientWithAccessKey(stsRegion, u.cfg.AccessKeyID, u.cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	request := sts.CreateAssumeRoleRequest()
	request.Scheme = "https"
	request.RoleArn = u.cfg.RoleArn
	request.RoleSessionName = "gcore-rewards-upload"
	request.DurationSeconds = "3600"

	response, err := client.AssumeRole(request)
	if err != nil {
		return nil, err
	}

	return &STSCredentials{
		AccessKeyId:     response.Credentials.AccessKeyId,
		AccessKeySecret: response.Credentials.AccessKeySecret,
		SecurityToken:   response.Credentials.SecurityToken,
		Expiration:      response.Credentials.Expiration,
		Region:          u.cfg.Region,
		Bucket:          u.cfg.Bucket,
	}, nil
}

// Upload puts body under rewards/<yyyy>/<mm>/<uuid><ext> and returns its public URL.
func (u *OSSUploader) Upload(name string, body io.Reader) (string, error) {
	client, err := oss.New(u.cfg.Endpoint, u.cfg.AccessKeyID, u.cfg.AccessKeySecret, oss.Timeout(30, 120))
	if err != nil {
		return "", fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(u.cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("failed to get bucket: %w", err)
	}

	key := ObjectKey(name, time.Now())
	if err := bucket.PutObject(key, body, oss.ObjectACL(oss.ACLPublicRead)); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	return PublicURL(u.cfg.Endpoint, u.cfg.Bucket, key), nil
}

func ObjectKey(name string, now time.Time) string {
	return fmt.Sprintf("rewards/%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), strings.ToLower(path.Ext(name)))
}

// PublicURL builds the virtual-hosted URL for key.
func PublicURL(endpoint, bucket, key string) string {
	scheme := "https"
	host := endpoint
	if before, after, ok := strings.Cut(endpoint, "://"); ok {
		scheme, host = before, after
	}
	return fmt.Sprintf("%s://%s.%s/%s", scheme, bucket, strings.TrimSuffix(host, "/"), key)
}
