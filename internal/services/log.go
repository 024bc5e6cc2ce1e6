package services

import "jelly/internal/logging"

var log = logging.For("services")
