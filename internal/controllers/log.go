package controllers

import "jelly/internal/logging"

var log = logging.For("http")
