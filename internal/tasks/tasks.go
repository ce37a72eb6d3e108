package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // registered for image.Decode
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hibiken/asynq"
	"github.com/nfnt/resize"
	"github.com/redis/go-redis/v9"

	"github.com/rubayet2027/KrishiLink-Client/internal/config"
)

// TaskType defines the type of a background task.
const (
	TypeImageProcess = "image:process"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// ImageTaskPayload identifies the uploaded object to normalize.
type ImageTaskPayload struct {
	S3Key string `json:"s3_key"`
}

// NewImageProcessTask creates the normalization task for an uploaded image.
func NewImageProcessTask(s3Key string) (*asynq.Task, error) {
	payload, err := json.Marshal(ImageTaskPayload{S3Key: s3Key})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image task payload: %w", err)
	}
	return asynq.NewTask(TypeImageProcess, payload, asynq.Queue("images")), nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg      *config.Config
	s3Client *s3.Client
}

func NewTaskProcessor(cfg *config.Config, s3Client *s3.Client) *TaskProcessor {
	return &TaskProcessor{
		cfg:      cfg,
		s3Client: s3Client,
	}
}

// SetupServer configures an Asynq server and mux for the image worker.
// The caller runs it; shutdown goes through asynq.Server.Shutdown.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
				"images":  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq Error] Task Type: %s, Payload: %s, Error: %v", task.Type(), string(task.Payload()), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeImageProcess, processor.HandleImageProcessTask)
	fmt.Println("Registered image processing task handlers.")

	return srv, mux
}

// --- Task Handlers ---

// HandleImageProcessTask normalizes an uploaded crop image in place. The
// object keeps its key, so the image URLs already embedded in the listing
// stay valid and no write-back to the marketplace API is needed.
func (p *TaskProcessor) HandleImageProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ImageTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal image task payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Printf("Processing image task: S3Key=%s", payload.S3Key)

	getObjectOutput, err := p.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.cfg.AwsS3Bucket),
		Key:    aws.String(payload.S3Key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			log.Printf("S3 object %s not found, likely upload failed or key incorrect.", payload.S3Key)
			return fmt.Errorf("s3 object not found: %w", asynq.SkipRetry)
		}
		return fmt.Errorf("failed to download image from S3: %w", err)
	}
	defer getObjectOutput.Body.Close()

	imgData, err := io.ReadAll(getObjectOutput.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}

	maxSizeBytes := int64(p.cfg.ImageMaxSizeMB) * 1024 * 1024
	if int64(len(imgData)) > maxSizeBytes {
		log.Printf("Image %s exceeds max size (%d > %d bytes). Skipping.", payload.S3Key, len(imgData), maxSizeBytes)
		return fmt.Errorf("image exceeds max size: %w", asynq.SkipRetry)
	}

	processed, contentType, changed, err := NormalizeImage(imgData, uint(p.cfg.ImageMaxDimension))
	if err != nil {
		log.Printf("Error normalizing image %s: %v", payload.S3Key, err)
		return fmt.Errorf("unsupported image format or corrupt image: %w", asynq.SkipRetry)
	}

	if !changed {
		log.Printf("Image %s already within limits, leaving as uploaded.", payload.S3Key)
		return nil
	}

	if int64(len(processed)) > maxSizeBytes {
		log.Printf("Normalized image %s still exceeds max size (%d > %d bytes). Skipping.", payload.S3Key, len(processed), maxSizeBytes)
		return fmt.Errorf("normalized image still exceeds max size: %w", asynq.SkipRetry)
	}

	_, err = p.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.AwsS3Bucket),
		Key:         aws.String(payload.S3Key),
		Body:        bytes.NewReader(processed),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload normalized image: %w", err)
	}

	log.Printf("Image task processed successfully: Key=%s", payload.S3Key)
	return nil
}

// NormalizeImage decodes an image and scales it down to fit maxDim on the
// longer side, re-encoding as JPEG. Returns changed=false when the image
// already fits and should be left as uploaded.
func NormalizeImage(data []byte, maxDim uint) ([]byte, string, bool, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to decode image: %w", err)
	}

	if uint(img.Bounds().Dx()) <= maxDim && uint(img.Bounds().Dy()) <= maxDim {
		return data, "image/" + format, false, nil
	}

	resizedImg := resize.Thumbnail(maxDim, maxDim, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", false, fmt.Errorf("failed to re-encode resized image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", true, nil
}
