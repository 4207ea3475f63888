package model

import "testing"

func TestRoleForCustomer(t *testing.T) {
    cases := map[string]string{
        "C0001": RoleAdmin,
        "c0002": RoleAdmin,
        "C1001": RoleCustomer,
        "X1001": "",
        "":      "",
    }
    for cno, want := range cases {
        if got := RoleForCustomer(cno); got != want {
            t.Fatalf("RoleForCustomer(%q) = %q, want %q", cno, got, want)
        }
    }
}
