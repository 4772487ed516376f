package services

// ServiceContainer holds all the service facades and manages their dependencies.
type ServiceContainer struct {
	Token   TokenSvcFacade
	User    UserSvcFacade
	Contact ContactSvcFacade
}
