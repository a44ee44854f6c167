package robots

/*
Robot is an inert placeholder. It holds no state and nothing calls it:
robots.txt is not fetched, cached, or enforced, and the frontier admits
URLs without any robots check.
*/

type Robot struct {
}
