package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Notifier --dir ../domain/notification --output domain/notification --outpkg notificationmock --filename notifier_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Store --dir ../domain/preference --output domain/preference --outpkg preferencemock --filename store_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ScheduleSource --dir ../usecase --output usecase --outpkg usecasemock --filename schedule_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name TeamsSource --dir ../usecase --output usecase --outpkg usecasemock --filename teams_source_mock.go
