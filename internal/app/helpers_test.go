package app

import "github.com/alexanderramin/backplan/internal/domain"

var fixedDeadline = domain.Date(2026, 3, 13)
