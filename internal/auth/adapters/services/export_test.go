package services

// NewJWTWithClock открывает конструктор с подменяемым временем для тестов.
var NewJWTWithClock = newJWT
