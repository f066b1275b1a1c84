package service

import (
	"context"
	"log"

	"gorm.io/gorm"

	imageModel "ecoquest_backend/internals/features/eco/image_uploads/model"
	submissionModel "ecoquest_backend/internals/features/eco/submissions/model"
	taskModel "ecoquest_backend/internals/features/eco/tasks/model"
	pointModel "ecoquest_backend/internals/features/progress/points/model"
	statsModel "ecoquest_backend/internals/features/progress/stats/model"
	schoolModel "ecoquest_backend/internals/features/schools/schools/model"
	authModel "ecoquest_backend/internals/features/users/auth/model"
	userModel "ecoquest_backend/internals/features/users/user/model"
	helperOSS "ecoquest_backend/internals/helpers/oss"
)

type WipeResult struct {
	Deleted        map[string]int64 `json:"deleted"`
	ObjectsDeleted int              `json:"objects_deleted"`
}

// WipeAll mengosongkan semua tabel domain. Urutan mengikuti dependensi (anak dulu).
// Object OSS yang tercatat di image_uploads / submission evidence ikut dihapus (best-effort).
func WipeAll(ctx context.Context, db *gorm.DB, blob helperOSS.BlobService) (WipeResult, error) {
	out := WipeResult{Deleted: map[string]int64{}}
	db = db.WithContext(ctx)

	var urls []string
	if blob != nil {
		var evidence, uploads []string
		if err := db.Model(&submissionModel.SubmissionModel{}).Pluck("submission_evidence", &evidence).Error; err != nil {
			return out, err
		}
		if err := db.Model(&imageModel.ImageUploadModel{}).Pluck("image_upload_url", &uploads).Error; err != nil {
			return out, err
		}
		urls = dedupe(append(evidence, uploads...))
	}

	tables := []interface{}{
		&imageModel.ImageUploadModel{},
		&submissionModel.SubmissionModel{},
		&pointModel.UserPointLog{},
		&taskModel.TaskModel{},
		&userModel.UserModel{},
		&schoolModel.SchoolModel{},
		&statsModel.GlobalStatsModel{},
		&authModel.TokenBlacklist{},
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, m := range tables {
			stmt := &gorm.Statement{DB: tx}
			if err := stmt.Parse(m); err != nil {
				return err
			}
			res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m)
			if res.Error != nil {
				return res.Error
			}
			out.Deleted[stmt.Schema.Table] = res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return WipeResult{}, err
	}

	if blob != nil && len(urls) > 0 {
		n, err := blob.DeleteManyByPublicURL(ctx, urls)
		if err != nil {
			log.Printf("[WARN] wipe: hapus object OSS gagal: %v", err)
		}
		out.ObjectsDeleted = n
	}

	log.Printf("[MAINTENANCE] wipe-data selesai: %v objects=%d", out.Deleted, out.ObjectsDeleted)
	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
