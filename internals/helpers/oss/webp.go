package helper

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"ecoquest_backend/internals/configs"
)

/* =======================================================================
   Konfigurasi WebP (ENV-Driven)
======================================================================= */

type WebPOptions struct {
	MaxW        int     // batas lebar (resize keep-aspect)
	MaxH        int     // batas tinggi
	TargetKB    int     // target ukuran; 0 = non-aktif (pakai Quality saja)
	Quality     float32 // default quality saat TargetKB=0
	MinQ        float32 // min quality utk binary search
	MaxQ        float32 // max quality utk binary search
	ToleranceKB int     // toleransi di atas target
	MinW        int     // lebar minimum saat iterative downscale
	MinH        int     // tinggi minimum
	ScaleStep   float32 // faktor perkecil tiap iterasi (0<step<1)
}

func DefaultWebPOptionsFromEnv() WebPOptions {
	return WebPOptions{
		MaxW:        configs.GetEnvInt("IMAGE_WEBP_MAX_W", 1600),
		MaxH:        configs.GetEnvInt("IMAGE_WEBP_MAX_H", 1600),
		TargetKB:    configs.GetEnvInt("IMAGE_WEBP_TARGET_KB", 0),
		Quality:     configs.GetEnvFloat("IMAGE_WEBP_QUALITY", 80),
		MinQ:        configs.GetEnvFloat("IMAGE_WEBP_MIN_Q", 45),
		MaxQ:        configs.GetEnvFloat("IMAGE_WEBP_MAX_Q", 85),
		ToleranceKB: configs.GetEnvInt("IMAGE_WEBP_TOLERANCE_KB", 8),
		MinW:        configs.GetEnvInt("IMAGE_WEBP_MIN_W", 480),
		MinH:        configs.GetEnvInt("IMAGE_WEBP_MIN_H", 480),
		ScaleStep:   configs.GetEnvFloat("IMAGE_WEBP_SCALE_STEP", 0.85),
	}
}

// ErrUnsupportedImage: bytes bukan jpeg/png/gif/bmp/tiff/webp
var ErrUnsupportedImage = fmt.Errorf("format gambar tidak didukung")

/* =======================================================================
   Decode → orientasi EXIF → fit → encode WebP
======================================================================= */

// DecodeImage membaca gambar apapun yang dikenal imaging (+ webp) dan
// memutar sesuai EXIF orientation (foto HP sering miring).
func DecodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if wimg, werr := webp.Decode(bytes.NewReader(all)); werr == nil {
		return wimg, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
}

// ConvertToWebP: decode → fit ke MaxW×MaxH → encode webp
func ConvertToWebP(all []byte, opts WebPOptions) ([]byte, error) {
	img, err := DecodeImage(all)
	if err != nil {
		return nil, err
	}
	if opts.MaxW > 0 && opts.MaxH > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxW || b.Dy() > opts.MaxH {
			img = imaging.Fit(img, opts.MaxW, opts.MaxH, imaging.Lanczos)
		}
	}
	return EncodeToWebP(img, opts)
}

// EncodeToWebP
// - TargetKB > 0 → binary search quality, lalu perkecil dimensi kalau masih kebesaran
// - TargetKB = 0 → encode sekali dengan Quality
func EncodeToWebP(img image.Image, opt WebPOptions) ([]byte, error) {
	encodeQ := func(im image.Image, q float32) ([]byte, error) {
		buf := new(bytes.Buffer)
		if err := webp.Encode(buf, im, &webp.Options{Quality: q}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	if opt.TargetKB <= 0 {
		q := opt.Quality
		if q <= 0 {
			q = 80
		}
		return encodeQ(img, q)
	}

	target := opt.TargetKB * 1024
	tol := opt.ToleranceKB * 1024
	if tol <= 0 {
		tol = 8 * 1024
	}
	minQ, maxQ := opt.MinQ, opt.MaxQ
	if minQ <= 0 {
		minQ = 45
	}
	if maxQ <= 0 {
		maxQ = 85
	}
	if minQ > maxQ {
		minQ, maxQ = maxQ, minQ
	}
	minW, minH := opt.MinW, opt.MinH
	if minW <= 0 {
		minW = 480
	}
	if minH <= 0 {
		minH = 480
	}
	step := float64(opt.ScaleStep)
	if step <= 0 || step >= 1 {
		step = 0.85
	}

	cur := img
	var last []byte
	for attempt := 0; attempt < 6; attempt++ {
		low, high := minQ, maxQ
		var best []byte
		for i := 0; i < 8; i++ {
			q := (low + high) / 2
			data, err := encodeQ(cur, q)
			if err != nil {
				return nil, err
			}
			if len(data) <= target+tol {
				best = data
				low = q // masih muat → coba quality lebih tinggi
			} else {
				high = q
			}
		}
		if best == nil {
			var err error
			if best, err = encodeQ(cur, minQ); err != nil {
				return nil, err
			}
		}
		last = best
		if len(best) <= target+tol {
			return best, nil
		}

		b := cur.Bounds()
		cw, ch := b.Dx(), b.Dy()
		if cw <= minW && ch <= minH {
			return best, nil
		}

		scale := math.Sqrt(float64(target+tol)/float64(len(best))) * 0.95
		if scale > step {
			scale = step
		} else if scale < 0.5 {
			scale = 0.5
		}
		nw := max(int(math.Round(float64(cw)*scale)), minW)
		nh := max(int(math.Round(float64(ch)*scale)), minH)
		if nw >= cw && nh >= ch {
			return best, nil
		}

		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), cur, b, draw.Over, nil)
		cur = dst
	}
	return last, nil
}
