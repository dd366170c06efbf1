package kitchenfeed

import "errors"

// ErrPublish возвращается при ошибке отправки события
var ErrPublish = errors.New("kitchenfeed: failed to publish event")
