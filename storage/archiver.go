package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultArchivePrefix = "tournaments"

// TournamentSnapshot is the JSON document written for a finished tournament.
type TournamentSnapshot struct {
	Tournament *models.Tournament `json:"tournament"`
	Standings  []models.Standing  `json:"standings"`
	ArchivedAt time.Time          `json:"archived_at"`
}

// TournamentArchiver stores final standings and all rounds of finished tournaments.
type TournamentArchiver struct {
	uploader ObjectUploader
	bucket   string
	prefix   string
	now      func() time.Time
}

func NewTournamentArchiver(uploader ObjectUploader, bucket, prefix string) *TournamentArchiver {
	if prefix == "" {
		prefix = defaultArchivePrefix
	}
	return &TournamentArchiver{
		uploader: uploader,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		now:      time.Now,
	}
}

// ArchiveKey returns the object key of a tournament snapshot.
func (a *TournamentArchiver) ArchiveKey(tournamentID string) string {
	return path.Join(a.prefix, tournamentID+".json")
}

func (a *TournamentArchiver) ArchiveTournament(ctx context.Context, t *models.Tournament) error {
	_, err := a.upload(ctx, t)
	return err
}

func (a *TournamentArchiver) upload(ctx context.Context, t *models.Tournament) (*UploadResult, error) {
	snapshot := TournamentSnapshot{
		Tournament: t,
		Standings:  brackets.LiveStandings(t.Players, nil),
		ArchivedAt: a.now().UTC(),
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot of tournament %s: %w", t.ID, err)
	}

	key := a.ArchiveKey(t.ID)
	out, err := a.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object to R2 (key: %s): %w", key, err)
	}

	etag := ""
	if out != nil && out.ETag != nil {
		// ETag от S3-совместимых API приходит в двойных кавычках
		etag = strings.Trim(*out.ETag, "\"")
	}
	return &UploadResult{Key: key, ETag: etag}, nil
}
