package dog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/daycare-scheduler/internal/audit"
	"github.com/BruksfildServices01/daycare-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/media"
	"github.com/BruksfildServices01/daycare-scheduler/internal/models"
)

// MaxPhotoBytes bounds the accepted upload before decoding.
const MaxPhotoBytes = 8 << 20

// UploadPhoto re-encodes a dog picture as a WebP thumbnail and stores it.
type UploadPhoto struct {
	dogs    *Dogs
	objects media.ObjectStore
}

func NewUploadPhoto(dogs *Dogs, objects media.ObjectStore) *UploadPhoto {
	if objects == nil {
		objects = media.Disabled{}
	}
	return &UploadPhoto{dogs: dogs, objects: objects}
}

func (uc *UploadPhoto) Execute(
	ctx context.Context,
	actor access.Actor,
	dogID uint,
	raw []byte,
) (*models.Dog, error) {

	d, err := uc.dogs.loadOwned(ctx, actor, dogID)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, httperr.MissingFields("photo")
	}
	if len(raw) > MaxPhotoBytes {
		return nil, httperr.Validation("photo is too large").WithCode("photo_too_large")
	}

	thumb, err := media.EncodeThumbnail(raw)
	if err != nil {
		return nil, httperr.Validation("photo must be a JPEG, PNG or WebP image").
			WithCode("invalid_image")
	}

	key := fmt.Sprintf("dogs/%d/%s.webp", d.ID, uuid.NewString())
	url, err := uc.objects.Put(ctx, key, "image/webp", thumb)
	if err != nil {
		return nil, err
	}

	d.PhotoURL = url
	if err := uc.dogs.repo.SaveDog(ctx, d); err != nil {
		return nil, err
	}

	uc.dogs.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actor.ID),
		Action:   "dog_photo_uploaded",
		Entity:   "dog",
		EntityID: audit.Ref(d.ID),
		Metadata: map[string]string{"key": key},
	})
	return d, nil
}
