package resilience

var NewBreakerWithClock = newBreaker
