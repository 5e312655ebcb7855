package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeThumbnail(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape is scaled", 2048, 1024, 512, 256},
		{"portrait is scaled", 600, 1200, 256, 512},
		{"small is kept", 100, 80, 100, 80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := EncodeThumbnail(pngOf(t, tc.w, tc.h))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			cfg, err := webp.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output is not webp: %v", err)
			}
			if cfg.Width != tc.wantW || cfg.Height != tc.wantH {
				t.Fatalf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestEncodeThumbnailRejectsGarbage(t *testing.T) {
	if _, err := EncodeThumbnail([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

type fakePut struct {
	in   *s3.PutObjectInput
	body []byte
}

func (f *fakePut) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePut(t *testing.T) {
	fake := &fakePut{}
	store := &S3Store{client: fake, bucket: "dogs", baseURL: "https://cdn.example"}

	url, err := store.Put(context.Background(), "dogs/1/a.webp", "image/webp", []byte("x"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "https://cdn.example/dogs/1/a.webp" {
		t.Fatalf("url = %s", url)
	}
	if aws.ToString(fake.in.Bucket) != "dogs" || aws.ToString(fake.in.ContentType) != "image/webp" {
		t.Fatalf("unexpected input: %+v", fake.in)
	}
	if string(fake.body) != "x" {
		t.Fatalf("body = %q", fake.body)
	}
}

func TestDisabledStoreIsUnavailable(t *testing.T) {
	_, err := Disabled{}.Put(context.Background(), "k", "image/webp", nil)
	if !httperr.Is(err, httperr.KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}
